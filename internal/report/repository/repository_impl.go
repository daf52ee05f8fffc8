package repository

import (
	"context"

	billingdomain "github.com/smallbiznis/backoffice/internal/billing/domain"
	"github.com/smallbiznis/backoffice/internal/report/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) TotalPaidByClient(ctx context.Context, db *gorm.DB) ([]domain.ClientTotalPaid, error) {
	var rows []domain.ClientTotalPaid
	err := db.WithContext(ctx).Raw(
		`SELECT
			c.id AS client_id,
			c.identification,
			c.full_name,
			c.email,
			COALESCE(SUM(i.paid_amount), 0) AS total_paid
		FROM clients c
		LEFT JOIN invoices i ON i.client_id = c.id
		GROUP BY c.id, c.identification, c.full_name, c.email
		ORDER BY total_paid DESC`,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) PendingInvoices(ctx context.Context, db *gorm.DB) ([]domain.PendingInvoice, error) {
	var rows []domain.PendingInvoice
	err := db.WithContext(ctx).Raw(
		`SELECT
			i.id AS invoice_id,
			i.invoice_number,
			i.billing_period,
			i.billed_amount,
			i.paid_amount,
			i.billed_amount - i.paid_amount AS outstanding,
			i.status,
			c.full_name,
			c.email
		FROM invoices i
		JOIN clients c ON c.id = i.client_id
		WHERE i.status <> ?
		ORDER BY i.billing_period ASC, i.invoice_number ASC`,
		string(billingdomain.InvoiceStatusPaid),
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) TransactionsByPlatform(ctx context.Context, db *gorm.DB, platform string) ([]domain.PlatformTransaction, error) {
	var rows []domain.PlatformTransaction
	err := db.WithContext(ctx).Raw(
		`SELECT
			t.txn_code,
			t.txn_date,
			t.amount,
			t.status,
			t.transaction_type,
			c.full_name,
			c.email,
			i.invoice_number
		FROM transactions t
		JOIN platforms p ON p.id = t.platform_id
		JOIN clients c ON c.id = t.client_id
		JOIN invoices i ON i.id = t.invoice_id
		WHERE p.name = ?
		ORDER BY t.txn_date DESC`,
		platform,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
