// Package catalog keeps the persistent bank name -> id mapping. Ids are
// assigned once and never renumbered, historical month files refer to banks
// by id only.
package catalog

import (
	"cardstats/internal/telemetry"
	"cardstats/lib/fsutil"
	"cardstats/lib/textutil"
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/antzucaro/matchr"
)

// similar names above this Jaro-Winkler score are reported as possible
// missing aliases
const similarityThreshold = 0.95

type Bank struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Catalog struct {
	aliases Aliases
	tel     telemetry.API

	banks  []Bank
	bySlug map[string]int
	maxID  int
	added  []Bank
}

// New creates an empty catalog.
func New(aliases Aliases, tel telemetry.API) *Catalog {
	if aliases == nil {
		aliases = Aliases{}
	}
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	return &Catalog{
		aliases: aliases,
		tel:     telemetry.Scoped("catalog", tel),
		bySlug:  map[string]int{},
	}
}

// Load reads the catalog persisted at `path`, a missing file is an empty
// catalog.
func Load(path string, aliases Aliases, tel telemetry.API) (*Catalog, error) {
	c := New(aliases, tel)

	var banks []Bank
	_, err := fsutil.ReadJSON(path, &banks)
	if err != nil {
		return nil, err
	}
	for _, b := range banks {
		if b.ID <= 0 || strings.TrimSpace(b.Name) == "" {
			return nil, fmt.Errorf("invalid bank entry in %s: %+v", path, b)
		}
		c.insert(b)
	}
	return c, nil
}

func (c *Catalog) insert(b Bank) {
	c.banks = append(c.banks, b)
	slug := textutil.Slug(b.Name)
	if _, exists := c.bySlug[slug]; !exists {
		c.bySlug[slug] = b.ID
	}
	if b.ID > c.maxID {
		c.maxID = b.ID
	}
}

// Resolve returns the id of a raw bank name, assigning the next id when the
// canonical name has not been seen before.
func (c *Catalog) Resolve(ctx context.Context, raw string) (id int, created bool) {
	name := c.aliases.Canonical(raw)
	slug := textutil.Slug(name)

	id, ok := c.bySlug[slug]
	if ok {
		return id, false
	}

	c.reportSimilar(ctx, name)

	bank := Bank{ID: c.maxID + 1, Name: name}
	c.insert(bank)
	c.added = append(c.added, bank)
	return bank.ID, true
}

func (c *Catalog) reportSimilar(ctx context.Context, name string) {
	upper := strings.ToUpper(name)
	for _, existing := range c.banks {
		similarity := matchr.JaroWinkler(upper, strings.ToUpper(existing.Name), false)
		if similarity >= similarityThreshold {
			c.tel.ReportWarning(
				ctx, "possible-alias",
				"name", name,
				"existing", existing.Name,
				"similarity", similarity,
			)
		}
	}
}

// Lookup returns the bank with the given id.
func (c *Catalog) Lookup(id int) (Bank, bool) {
	for _, b := range c.banks {
		if b.ID == id {
			return b, true
		}
	}
	return Bank{}, false
}

// Added returns the banks created since the catalog was loaded.
func (c *Catalog) Added() []Bank {
	return slices.Clone(c.added)
}

// Banks returns every entry sorted by name, ties broken by id.
func (c *Catalog) Banks() []Bank {
	out := slices.Clone(c.banks)
	slices.SortFunc(out, func(a, b Bank) int {
		if n := cmp.Compare(a.Name, b.Name); n != 0 {
			return n
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

func (c *Catalog) Len() int {
	return len(c.banks)
}

// Save writes the catalog to `path` sorted by name.
func (c *Catalog) Save(path string) error {
	banks := c.Banks()
	if banks == nil {
		banks = []Bank{}
	}
	return fsutil.WriteJSON(path, banks)
}
