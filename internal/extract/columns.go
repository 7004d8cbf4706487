package extract

import (
	"errors"
	"fmt"
	"regexp"
)

var ErrColumnNotFound = errors.New("column not found")

func countMatches(name string, patterns []*regexp.Regexp) int {
	n := 0
	for _, p := range patterns {
		if p.MatchString(name) {
			n++
		}
	}
	return n
}

// Score rates how well a column name fits a concept:
// (include patterns matched) - 2 * (exclude patterns matched).
func Score(name string, include, exclude []*regexp.Regexp) int {
	return countMatches(name, include) - 2*countMatches(name, exclude)
}

// Candidate is a column that matched at least one include pattern.
type Candidate struct {
	Index int
	Name  string
	Score int
}

// Candidates lists every column matching at least one include pattern of
// the concept, in column order.
func Candidates(columns []string, concept Concept) []Candidate {
	var out []Candidate
	for i, name := range columns {
		if countMatches(name, concept.Include) == 0 {
			continue
		}
		out = append(out, Candidate{
			Index: i,
			Name:  name,
			Score: Score(name, concept.Include, concept.Exclude),
		})
	}
	return out
}

// SelectColumn picks the highest scoring candidate for the concept, the
// first column reaching the maximum wins. It fails with ErrColumnNotFound
// when no column matches any include pattern.
func SelectColumn(columns []string, concept Concept) (Candidate, error) {
	candidates := Candidates(columns, concept)
	if len(candidates) == 0 {
		return Candidate{}, fmt.Errorf("%w: %s", ErrColumnNotFound, concept.Name)
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Score > best.Score {
			best = c
		}
	}
	return best, nil
}
