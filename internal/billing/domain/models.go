package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Platform struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"uniqueIndex;not null;size:50" json:"name"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

type Invoice struct {
	ID            snowflake.ID  `gorm:"primaryKey" json:"id"`
	InvoiceNumber string        `gorm:"column:invoice_number;uniqueIndex;not null;size:50" json:"invoice_number"`
	BillingPeriod string        `gorm:"column:billing_period;not null;size:7" json:"billing_period"`
	BilledAmount  float64       `gorm:"column:billed_amount;not null" json:"billed_amount"`
	PaidAmount    float64       `gorm:"column:paid_amount;not null" json:"paid_amount"`
	Status        InvoiceStatus `gorm:"not null;size:10" json:"status"`
	ClientID      snowflake.ID  `gorm:"column:client_id;not null;index" json:"client_id"`
	CreatedAt     time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type Transaction struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	TxnCode         string       `gorm:"column:txn_code;uniqueIndex;not null;size:50" json:"txn_code"`
	TxnDate         time.Time    `gorm:"column:txn_date;not null;index" json:"txn_date"`
	Amount          float64      `gorm:"not null" json:"amount"`
	Status          string       `gorm:"not null;size:20" json:"status"`
	TransactionType string       `gorm:"column:transaction_type;not null;size:50" json:"transaction_type"`
	ClientID        snowflake.ID `gorm:"column:client_id;not null;index" json:"client_id"`
	PlatformID      snowflake.ID `gorm:"column:platform_id;not null;index" json:"platform_id"`
	InvoiceID       snowflake.ID `gorm:"column:invoice_id;not null;index" json:"invoice_id"`
	CreatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Transaction statuses as they appear in the billing exports.
const (
	TxnStatusPending   = "Pendiente"
	TxnStatusCompleted = "Completada"
	TxnStatusFailed    = "Fallida"
)
