package catalog

import (
	"cardstats/lib/textutil"
	_ "embed"
	"fmt"
	"os"

	"github.com/titanous/json5"
)

//go:embed aliases.json5
var builtinAliasesFile []byte

// Aliases maps the slug of a bank name spelling to its canonical name.
type Aliases map[string]string

func parseAliases(contents []byte) (Aliases, error) {
	var raw map[string]string
	err := json5.Unmarshal(contents, &raw)
	if err != nil {
		return nil, err
	}
	aliases := make(Aliases, len(raw))
	for spelling, canonical := range raw {
		canonical = textutil.CollapseWhitespace(canonical)
		slug := textutil.Slug(spelling)
		if slug == "" || canonical == "" {
			continue
		}
		aliases[slug] = canonical
	}
	return aliases, nil
}

// DefaultAliases returns the built-in alias table.
func DefaultAliases() Aliases {
	aliases, err := parseAliases(builtinAliasesFile)
	if err != nil {
		panic(err)
	}
	return aliases
}

// LoadAliases returns the built-in alias table overlaid with the entries of
// the json5 file at `path` (an object of spelling -> canonical name). An
// empty path returns the built-in table.
func LoadAliases(path string) (Aliases, error) {
	aliases := DefaultAliases()
	if path == "" {
		return aliases, nil
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	extra, err := parseAliases(contents)
	if err != nil {
		return nil, fmt.Errorf("parse aliases %s: %w", path, err)
	}
	for slug, canonical := range extra {
		aliases[slug] = canonical
	}
	return aliases, nil
}

// Canonical trims and collapses the whitespace of a raw bank name and
// applies the alias table.
func (a Aliases) Canonical(raw string) string {
	name := textutil.CollapseWhitespace(raw)
	canonical, ok := a[textutil.Slug(name)]
	if ok {
		return canonical
	}
	return name
}
