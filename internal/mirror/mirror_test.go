package mirror

import (
	"cardstats/internal/mirror/db"
	"cardstats/lib/testutil"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 {
	return &v
}

func TestReplaceMonth(t *testing.T) {
	res, cleanup := testutil.SetupComponent(t, testutil.ComponentParams{
		Name:     "mirror",
		DbSchema: db.Schema,
	})
	defer cleanup()
	store := NewStore(res.DB)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	err := store.Migrate(ctx)
	if err != nil {
		t.Fatal(err)
	}
	// migrations are idempotent
	err = store.Migrate(ctx)
	if err != nil {
		t.Fatal(err)
	}

	month := Month{
		Year:  2025,
		Month: 9,
		Banks: []Bank{
			{ID: 1, Name: "State Bank of India"},
			{ID: 2, Name: "HDFC Bank"},
		},
		Records: []Record{
			{BankID: 1, CreditCardsOutstanding: ptr(100), DebitCardsOutstanding: ptr(200)},
			{BankID: 2, CreditCardsOutstanding: nil, DebitCardsOutstanding: ptr(50)},
		},
	}
	err = store.ReplaceMonth(ctx, month)
	if err != nil {
		t.Fatal(err)
	}

	{
		records, err := store.Records(ctx, 2025, 9)
		if err != nil {
			t.Fatal(err)
		}
		require.Equal(t, month.Records, records)
	}

	month.Records = month.Records[:1]
	month.Banks[1].Name = "HDFC Bank Ltd"
	err = store.ReplaceMonth(ctx, month)
	if err != nil {
		t.Fatal(err)
	}
	err = store.ReplaceMonth(ctx, month)
	if err != nil {
		t.Fatal(err)
	}

	records, err := store.Records(ctx, 2025, 9)
	if err != nil {
		t.Fatal(err)
	}
	require.Len(t, records, 1)
	require.Equal(t, 100.0, *records[0].CreditCardsOutstanding)

	banks, err := store.Banks(ctx)
	if err != nil {
		t.Fatal(err)
	}
	require.Equal(t, []Bank{
		{ID: 1, Name: "State Bank of India"},
		{ID: 2, Name: "HDFC Bank Ltd"},
	}, banks)

	empty, err := store.Records(ctx, 2025, 10)
	if err != nil {
		t.Fatal(err)
	}
	require.Empty(t, empty)
}
