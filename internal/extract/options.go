package extract

import (
	"fmt"
	"regexp"
)

// Concept is a column the extractor has to find, described as patterns over
// the flattened (lowercase, underscored) column names.
type Concept struct {
	Name    string
	Include []*regexp.Regexp
	Exclude []*regexp.Regexp
}

// PatternSet is the serializable form of a Concept.
type PatternSet struct {
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

func (p PatternSet) Compile(name string) (Concept, error) {
	include, err := compileAll(p.Include, false)
	if err != nil {
		return Concept{}, fmt.Errorf("concept %s: %w", name, err)
	}
	exclude, err := compileAll(p.Exclude, false)
	if err != nil {
		return Concept{}, fmt.Errorf("concept %s: %w", name, err)
	}
	if len(include) == 0 {
		return Concept{}, fmt.Errorf("concept %s: at least one include pattern is required", name)
	}
	return Concept{Name: name, Include: include, Exclude: exclude}, nil
}

func compileAll(patterns []string, foldCase bool) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		if foldCase {
			p = "(?i)" + p
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		out[i] = re
	}
	return out, nil
}

// PatternConfig is the user facing configuration of the extractor, every
// zero field falls back to the default.
type PatternConfig struct {
	PreviewRows int        `json:"preview_rows"`
	HeaderDepth int        `json:"header_depth"`
	Anchors     []string   `json:"anchors"`
	Bank        PatternSet `json:"bank"`
	Credit      PatternSet `json:"credit"`
	Debit       PatternSet `json:"debit"`
}

var excludeNeighbourMetrics = []string{
	`value`, `amount`, `volume`, `transaction`, `txn`, `_at_`, `e_?commerce`,
}

func DefaultPatternConfig() PatternConfig {
	return PatternConfig{
		PreviewRows: 12,
		HeaderDepth: 3,
		// anchors are tried in order, and match case-insensitively against
		// the whitespace-collapsed cell text
		Anchors: []string{
			`bank\s*name`,
			`name\s+of\s+the\s+bank`,
			`^bank$`,
		},
		Bank: PatternSet{
			Include: []string{`bank_name`, `name_of_the_bank`, `(^|_)bank(_|$)`},
			Exclude: []string{`type`, `group`, `category`, `code`},
		},
		Credit: PatternSet{
			Include: []string{`credit_card`, `credit_cards?_outstanding`, `outstanding_credit_cards?`},
			Exclude: append([]string{`debit`}, excludeNeighbourMetrics...),
		},
		Debit: PatternSet{
			Include: []string{`debit_card`, `debit_cards?_outstanding`, `outstanding_debit_cards?`},
			Exclude: append([]string{`credit`}, excludeNeighbourMetrics...),
		},
	}
}

// Options is the compiled form of PatternConfig.
type Options struct {
	PreviewRows int
	HeaderDepth int
	Anchors     []*regexp.Regexp
	Bank        Concept
	Credit      Concept
	Debit       Concept
}

func (c PatternConfig) withDefaults() PatternConfig {
	d := DefaultPatternConfig()
	if c.PreviewRows <= 0 {
		c.PreviewRows = d.PreviewRows
	}
	if c.HeaderDepth <= 0 {
		c.HeaderDepth = d.HeaderDepth
	}
	if len(c.Anchors) == 0 {
		c.Anchors = d.Anchors
	}
	if len(c.Bank.Include) == 0 {
		c.Bank = d.Bank
	}
	if len(c.Credit.Include) == 0 {
		c.Credit = d.Credit
	}
	if len(c.Debit.Include) == 0 {
		c.Debit = d.Debit
	}
	return c
}

// Compile validates the configuration, filling unset fields with defaults.
func (c PatternConfig) Compile() (Options, error) {
	c = c.withDefaults()

	anchors, err := compileAll(c.Anchors, true)
	if err != nil {
		return Options{}, fmt.Errorf("anchors: %w", err)
	}
	bank, err := c.Bank.Compile("bank_name")
	if err != nil {
		return Options{}, err
	}
	credit, err := c.Credit.Compile("credit_cards_outstanding")
	if err != nil {
		return Options{}, err
	}
	debit, err := c.Debit.Compile("debit_cards_outstanding")
	if err != nil {
		return Options{}, err
	}

	return Options{
		PreviewRows: c.PreviewRows,
		HeaderDepth: c.HeaderDepth,
		Anchors:     anchors,
		Bank:        bank,
		Credit:      credit,
		Debit:       debit,
	}, nil
}

// DefaultOptions panics if the built-in patterns do not compile.
func DefaultOptions() Options {
	opts, err := DefaultPatternConfig().Compile()
	if err != nil {
		panic(err)
	}
	return opts
}
