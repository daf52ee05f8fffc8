package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type ClientTotalPaid struct {
	ClientID       snowflake.ID `gorm:"column:client_id" json:"client_id"`
	Identification string       `gorm:"column:identification" json:"identification"`
	FullName       string       `gorm:"column:full_name" json:"full_name"`
	Email          string       `gorm:"column:email" json:"email"`
	TotalPaid      float64      `gorm:"column:total_paid" json:"total_paid"`
}

type PendingInvoice struct {
	InvoiceID     snowflake.ID `gorm:"column:invoice_id" json:"invoice_id"`
	InvoiceNumber string       `gorm:"column:invoice_number" json:"invoice_number"`
	BillingPeriod string       `gorm:"column:billing_period" json:"billing_period"`
	BilledAmount  float64      `gorm:"column:billed_amount" json:"billed_amount"`
	PaidAmount    float64      `gorm:"column:paid_amount" json:"paid_amount"`
	Outstanding   float64      `gorm:"column:outstanding" json:"outstanding"`
	Status        string       `gorm:"column:status" json:"status"`
	FullName      string       `gorm:"column:full_name" json:"full_name"`
	Email         string       `gorm:"column:email" json:"email"`
}

type PlatformTransaction struct {
	TxnCode         string    `gorm:"column:txn_code" json:"txn_code"`
	TxnDate         time.Time `gorm:"column:txn_date" json:"txn_date"`
	Amount          float64   `gorm:"column:amount" json:"amount"`
	Status          string    `gorm:"column:status" json:"status"`
	TransactionType string    `gorm:"column:transaction_type" json:"transaction_type"`
	FullName        string    `gorm:"column:full_name" json:"full_name"`
	Email           string    `gorm:"column:email" json:"email"`
	InvoiceNumber   string    `gorm:"column:invoice_number" json:"invoice_number"`
}

type Service interface {
	TotalPaidByClient(ctx context.Context) ([]ClientTotalPaid, error)
	PendingInvoices(ctx context.Context) ([]PendingInvoice, error)
	TransactionsByPlatform(ctx context.Context, platform string) ([]PlatformTransaction, error)
}

type Repository interface {
	TotalPaidByClient(ctx context.Context, db *gorm.DB) ([]ClientTotalPaid, error)
	PendingInvoices(ctx context.Context, db *gorm.DB) ([]PendingInvoice, error)
	TransactionsByPlatform(ctx context.Context, db *gorm.DB, platform string) ([]PlatformTransaction, error)
}

var ErrPlatformRequired = errors.New("platform_required")
