package repository

import (
	"context"

	"github.com/smallbiznis/backoffice/internal/history/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FetchRowsByEmail(ctx context.Context, db *gorm.DB, email string) ([]domain.HistoryRow, error) {
	var rows []domain.HistoryRow
	err := db.WithContext(ctx).Raw(
		`SELECT
			c.email,
			c.full_name,
			c.identification,
			t.txn_code,
			t.txn_date,
			t.amount,
			t.status,
			t.transaction_type,
			p.name AS platform_name,
			i.invoice_number
		FROM clients c
		LEFT JOIN transactions t ON t.client_id = c.id
		LEFT JOIN platforms p ON p.id = t.platform_id
		LEFT JOIN invoices i ON i.id = t.invoice_id
		WHERE c.email = ?
		ORDER BY t.txn_date DESC`,
		email,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) ListClientEmails(ctx context.Context, db *gorm.DB) ([]string, error) {
	var emails []string
	err := db.WithContext(ctx).Raw(
		`SELECT email FROM clients ORDER BY email ASC`,
	).Scan(&emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}
