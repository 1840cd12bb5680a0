package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type capturedQuery struct {
	sql  string
	vars []interface{}
}

// dryRunDB builds statements against the postgres dialect without a server
// and records the last query it would have sent.
func dryRunDB(t *testing.T) (*gorm.DB, *capturedQuery) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=fuelinvoice dbname=fuelinvoice sslmode=disable",
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	require.NoError(t, err)

	captured := &capturedQuery{}
	err = db.Callback().Query().After("gorm:query").Register("test:capture", func(tx *gorm.DB) {
		captured.sql = tx.Statement.SQL.String()
		captured.vars = tx.Statement.Vars
	})
	require.NoError(t, err)
	return db, captured
}

func TestTaxInvoiceRepository_FindLatestInvoiceNumberForCompany(t *testing.T) {
	db, captured := dryRunDB(t)
	repo := NewTaxInvoiceRepository(db)

	number, found, err := repo.FindLatestInvoiceNumberForCompany(context.Background(), "Acme Logistics")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Empty(t, number)

	sql := captured.sql
	require.NotEmpty(t, sql)
	assert.Contains(t, sql, `FROM "tax_invoice"`)
	assert.Contains(t, sql, "WHERE company_name = $1")
	assert.Contains(t, sql, "ORDER BY CASE WHEN tax_invoice_no ~ '[0-9]{5}$' THEN CAST(RIGHT(tax_invoice_no, 5) AS INTEGER) ELSE 0 END DESC")
	assert.Contains(t, sql, "LIMIT 1")
	assert.Equal(t, []interface{}{"Acme Logistics"}, captured.vars)
}

func TestTaxInvoiceRepository_LatestNumberScansWholeHistory(t *testing.T) {
	db, captured := dryRunDB(t)
	repo := NewTaxInvoiceRepository(db)

	_, _, err := repo.FindLatestInvoiceNumberForCompany(context.Background(), "Acme Logistics")
	require.NoError(t, err)

	for _, column := range []string{"invoice_date", "from_date", "to_date", "created_at", "EXTRACT", "date_trunc", "to_char"} {
		assert.NotContains(t, captured.sql, column)
	}
	assert.Len(t, captured.vars, 1)
}
