package service

import (
	"testing"

	"github.com/smallbiznis/backoffice/internal/config"
	"github.com/smallbiznis/backoffice/internal/importer/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRecord(cfg config.ImportConfig) parser.Record {
	cols := cfg.Columns
	return parser.Record{
		RowNumber: 2,
		Values: map[string]string{
			cols.TxnCode:         "TXN-001",
			cols.TxnDate:         "44562",
			cols.Amount:          "150.50",
			cols.Status:          "Completada",
			cols.TransactionType: "Pago de Factura",
			cols.FullName:        "Ana García",
			cols.Identification:  "1712345678",
			cols.Address:         "Av. Amazonas N24-03",
			cols.Phone:           "0998765432",
			cols.Email:           "Ana.Garcia@Example.com",
			cols.PlatformName:    "PayPhone",
			cols.InvoiceNumber:   "FAC-001",
			cols.BillingPeriod:   "2022-01",
			cols.BilledAmount:    "150.50",
			cols.PaidAmount:      "150.50",
		},
	}
}

func TestMapRecord_Valid(t *testing.T) {
	cfg := config.DefaultImportConfig()
	row, errs := mapRecord(validRecord(cfg), cfg)

	require.Empty(t, errs)
	assert.Equal(t, "TXN-001", row.TxnCode)
	assert.Equal(t, "ana.garcia@example.com", row.Email)
	assert.Equal(t, 150.50, row.Amount)
	assert.Equal(t, 2022, row.TxnDate.Year())
	assert.Equal(t, "Pago de Factura", row.TransactionType)
}

func TestMapRecord_DefaultsTransactionType(t *testing.T) {
	cfg := config.DefaultImportConfig()
	rec := validRecord(cfg)
	rec.Values[cfg.Columns.TransactionType] = ""

	row, errs := mapRecord(rec, cfg)
	require.Empty(t, errs)
	assert.Equal(t, cfg.DefaultTransactionType, row.TransactionType)
}

func TestMapRecord_BlankAmountsMeanZero(t *testing.T) {
	cfg := config.DefaultImportConfig()
	rec := validRecord(cfg)
	rec.Values[cfg.Columns.Amount] = ""
	rec.Values[cfg.Columns.BilledAmount] = " "
	rec.Values[cfg.Columns.PaidAmount] = ""

	row, errs := mapRecord(rec, cfg)
	require.Empty(t, errs)
	assert.Zero(t, row.Amount)
	assert.Zero(t, row.BilledAmount)
	assert.Zero(t, row.PaidAmount)
}

func TestMapRecord_RequiredFields(t *testing.T) {
	cfg := config.DefaultImportConfig()
	cols := cfg.Columns

	tests := []struct {
		column string
		want   string
	}{
		{cols.TxnCode, "txn_code is required"},
		{cols.Status, "status is required"},
		{cols.FullName, "full_name is required"},
		{cols.Identification, "identification is required"},
		{cols.Email, "email is required"},
		{cols.PlatformName, "platform_name is required"},
		{cols.InvoiceNumber, "invoice_number is required"},
		{cols.BillingPeriod, "billing_period is required"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			rec := validRecord(cfg)
			rec.Values[tt.column] = "  "

			_, errs := mapRecord(rec, cfg)
			assert.Contains(t, errs, tt.want)
		})
	}
}

func TestMapRecord_InvalidValues(t *testing.T) {
	cfg := config.DefaultImportConfig()
	cols := cfg.Columns

	tests := []struct {
		name   string
		column string
		value  string
		want   string
	}{
		{"bad date", cols.TxnDate, "yesterday", "txn_date is invalid"},
		{"missing date", cols.TxnDate, "", "txn_date is invalid"},
		{"bad amount", cols.Amount, "abc", "amount is invalid"},
		{"nan amount", cols.Amount, "NaN", "amount is invalid"},
		{"bad billed", cols.BilledAmount, "abc", "billed_amount is invalid"},
		{"bad paid", cols.PaidAmount, "12,50", "paid_amount is invalid"},
		{"unknown status", cols.Status, "Procesando", "status must be one of: Pendiente, Completada, Fallida"},
		{"month out of shape", cols.BillingPeriod, "2024-1", "billing_period must have format YYYY-MM"},
		{"month out of range", cols.BillingPeriod, "2024-13", "billing_period must have format YYYY-MM"},
		{"month zero", cols.BillingPeriod, "2024-00", "billing_period must have format YYYY-MM"},
		{"free-form period", cols.BillingPeriod, "enero 2024", "billing_period must have format YYYY-MM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord(cfg)
			rec.Values[tt.column] = tt.value

			_, errs := mapRecord(rec, cfg)
			assert.Contains(t, errs, tt.want)
		})
	}
}

func TestMapRecord_CollectsAllErrors(t *testing.T) {
	cfg := config.DefaultImportConfig()
	rec := parser.Record{RowNumber: 5, Values: map[string]string{}}

	_, errs := mapRecord(rec, cfg)
	assert.GreaterOrEqual(t, len(errs), 8)
}
