package catalog

import (
	"cardstats/internal/telemetry"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestResolveAliases(t *testing.T) {
	ctx := context.Background()
	c := New(DefaultAliases(), &telemetry.Recorder{})

	sbi, created := c.Resolve(ctx, "SBI")
	require.True(t, created)
	require.Equal(t, 1, sbi)

	id, created := c.Resolve(ctx, "State Bank of India")
	require.False(t, created)
	require.Equal(t, sbi, id)

	id, created = c.Resolve(ctx, "  STATE   BANK OF\nINDIA ")
	require.False(t, created)
	require.Equal(t, sbi, id)

	hdfc, created := c.Resolve(ctx, "HDFC Bank Ltd.")
	require.True(t, created)
	require.Equal(t, 2, hdfc)

	id, _ = c.Resolve(ctx, "HDFC BANK")
	require.Equal(t, hdfc, id)

	bank, ok := c.Lookup(hdfc)
	require.True(t, ok)
	require.Equal(t, "HDFC Bank", bank.Name)
}

func TestResolveStableAcrossRuns(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "banks.json")

	first, err := Load(path, DefaultAliases(), nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Zeta Bank", "Alpha Bank", "SBI"} {
		first.Resolve(ctx, name)
	}
	err = first.Save(path)
	if err != nil {
		t.Fatal(err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	expected := `[
  {
    "id": 2,
    "name": "Alpha Bank"
  },
  {
    "id": 3,
    "name": "State Bank of India"
  },
  {
    "id": 1,
    "name": "Zeta Bank"
  }
]
`
	if diff := cmp.Diff(expected, string(contents)); diff != "" {
		t.Fatal(diff)
	}

	second, err := Load(path, DefaultAliases(), nil)
	if err != nil {
		t.Fatal(err)
	}
	id, created := second.Resolve(ctx, "State Bank of India")
	require.False(t, created)
	require.Equal(t, 3, id)

	id, created = second.Resolve(ctx, "Beta Bank")
	require.True(t, created)
	require.Equal(t, 4, id)
	require.Equal(t, []Bank{{ID: 4, Name: "Beta Bank"}}, second.Added())
}

func TestLoadRejectsInvalidEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banks.json")
	err := os.WriteFile(path, []byte(`[{"id": 0, "name": "Nobody"}]`), 0644)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Load(path, nil, nil)
	require.Error(t, err)
}

func TestSaveEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "banks.json")
	err := New(nil, nil).Save(path)
	if err != nil {
		t.Fatal(err)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "[]\n", string(contents))
}

func TestPossibleAliasWarning(t *testing.T) {
	ctx := context.Background()
	rec := &telemetry.Recorder{}
	c := New(Aliases{}, rec)

	c.Resolve(ctx, "Punjab National Bank")
	require.Empty(t, rec.Find("catalog:possible-alias"))

	c.Resolve(ctx, "Punjab National Bnak")
	warnings := rec.Find("catalog:possible-alias")
	require.Len(t, warnings, 1)
	require.Equal(t, "Punjab National Bnak", warnings[0].Arg("name"))
	require.Equal(t, "Punjab National Bank", warnings[0].Arg("existing"))
	require.GreaterOrEqual(t, warnings[0].Arg("similarity"), similarityThreshold)

	c.Resolve(ctx, "Kotak Mahindra Bank")
	require.Len(t, rec.Find("catalog:possible-alias"), 1)
}

func TestLoadAliasesOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.json5")
	err := os.WriteFile(path, []byte(`{
  // appended by an operator
  "Paytm Payments Bank Ltd": "Paytm Payments Bank",
  "SBI": "SBI Group"
}`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	aliases, err := LoadAliases(path)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, "Paytm Payments Bank", aliases.Canonical("PAYTM PAYMENTS BANK LTD."))
	require.Equal(t, "SBI Group", aliases.Canonical("S.B.I."))
	require.Equal(t, "HDFC Bank", aliases.Canonical("HDFC Bank Limited"))
	require.Equal(t, "Some Other Bank", aliases.Canonical(" Some  Other Bank "))

	_, err = LoadAliases(filepath.Join(t.TempDir(), "missing.json5"))
	require.Error(t, err)
}
