package domain

import (
	"time"
)

// TransactionSummary is one denormalized transaction entry inside a client
// history document.
type TransactionSummary struct {
	TxnCode         string    `json:"txnCode"`
	Date            time.Time `json:"date"`
	Platform        string    `json:"platform"`
	InvoiceNumber   string    `json:"invoiceNumber"`
	Amount          float64   `json:"amount"`
	Status          string    `json:"status"`
	TransactionType string    `json:"transactionType"`
}

// ClientHistory is the read-optimized projection of one client and their
// transactions, keyed by email. It is derived from the relational store and
// rebuilt wholesale on every sync; it is never the source of truth.
type ClientHistory struct {
	ClientEmail    string               `json:"clientEmail"`
	ClientName     string               `json:"clientName"`
	Identification string               `json:"identification"`
	Transactions   []TransactionSummary `json:"transactions"`
	UpdatedAt      time.Time            `json:"updatedAt"`
}
