// Package mirror copies published months into a SQL database (local sqlite
// or remote libsql) so they can be queried.
package mirror

import (
	"cardstats/internal/mirror/db"
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("cardstats.internal.mirror")

type Bank struct {
	ID   int
	Name string
}

type Record struct {
	BankID                 int
	CreditCardsOutstanding *float64
	DebitCardsOutstanding  *float64
}

type Month struct {
	Year    int
	Month   int
	Banks   []Bank
	Records []Record
}

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// Migrate creates the tables if they do not exist yet.
func (s Store) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, db.Schema)
	return err
}

// ReplaceMonth upserts the given banks and replaces every record of the
// month with `m.Records` in a single transaction.
func (s Store) ReplaceMonth(ctx context.Context, m Month) error {
	ctx, span := tracer.Start(ctx, "ReplaceMonth")
	defer span.End()
	span.SetAttributes(
		attribute.Int("year", m.Year),
		attribute.Int("month", m.Month),
		attribute.Int("records", len(m.Records)),
	)

	err := s.replaceMonth(ctx, m)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to replace month")
		return fmt.Errorf("mirror %04d-%02d: %w", m.Year, m.Month, err)
	}
	return nil
}

func (s Store) replaceMonth(ctx context.Context, m Month) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, b := range m.Banks {
		_, err := tx.ExecContext(
			ctx,
			`insert into bank (id, name) values (?, ?)
			on conflict (id) do update set name = excluded.name`,
			b.ID, b.Name,
		)
		if err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(
		ctx,
		"delete from monthly_record where year = ? and month = ?",
		m.Year, m.Month,
	)
	if err != nil {
		return err
	}

	for _, r := range m.Records {
		_, err := tx.ExecContext(
			ctx,
			`insert into monthly_record (
				bank_id, year, month,
				credit_cards_outstanding, debit_cards_outstanding
			) values (?, ?, ?, ?, ?)`,
			r.BankID, m.Year, m.Month,
			nullFloat(r.CreditCardsOutstanding),
			nullFloat(r.DebitCardsOutstanding),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Records returns the records of a month ordered by bank id.
func (s Store) Records(ctx context.Context, year, month int) ([]Record, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`select bank_id, credit_cards_outstanding, debit_cards_outstanding
		from monthly_record
		where year = ? and month = ?
		order by bank_id`,
		year, month,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var credit, debit sql.NullFloat64
		err := rows.Scan(&r.BankID, &credit, &debit)
		if err != nil {
			return nil, err
		}
		r.CreditCardsOutstanding = floatPtr(credit)
		r.DebitCardsOutstanding = floatPtr(debit)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Banks returns every mirrored bank ordered by id.
func (s Store) Banks(ctx context.Context) ([]Bank, error) {
	rows, err := s.db.QueryContext(ctx, "select id, name from bank order by id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Bank
	for rows.Next() {
		var b Bank
		err := rows.Scan(&b.ID, &b.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
