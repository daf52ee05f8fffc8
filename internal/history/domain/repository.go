package domain

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// HistoryRow is one row of the relational join feeding a history document.
// Transaction columns are pointers because clients without transactions
// still produce one row through the left join.
type HistoryRow struct {
	Email           string     `gorm:"column:email"`
	FullName        string     `gorm:"column:full_name"`
	Identification  string     `gorm:"column:identification"`
	TxnCode         *string    `gorm:"column:txn_code"`
	TxnDate         *time.Time `gorm:"column:txn_date"`
	Amount          *float64   `gorm:"column:amount"`
	Status          *string    `gorm:"column:status"`
	TransactionType *string    `gorm:"column:transaction_type"`
	PlatformName    *string    `gorm:"column:platform_name"`
	InvoiceNumber   *string    `gorm:"column:invoice_number"`
}

type Repository interface {
	FetchRowsByEmail(ctx context.Context, db *gorm.DB, email string) ([]HistoryRow, error)
	ListClientEmails(ctx context.Context, db *gorm.DB) ([]string, error)
}
