package domain

import (
	"time"
)

// Row is one validated, fully-typed spreadsheet row: a transaction plus the
// client, platform and invoice context it carries.
type Row struct {
	RowNumber int

	TxnCode         string
	TxnDate         time.Time
	Amount          float64
	Status          string
	TransactionType string

	FullName       string
	Identification string
	Address        string
	Phone          string
	Email          string

	PlatformName string

	InvoiceNumber string
	BillingPeriod string
	BilledAmount  float64
	PaidAmount    float64
}

// Result summarizes one processed import file.
type Result struct {
	RowsProcessed         int    `json:"rowsProcessed"`
	ClientsTouched        int    `json:"clientsTouched"`
	StaleHistoriesRemoved int    `json:"staleHistoriesRemoved"`
	Message               string `json:"message"`
}
