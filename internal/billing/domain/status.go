package domain

// InvoiceStatus is the derived lifecycle state of an invoice. It is always
// recomputed from the billed and paid amounts at write time, never taken
// from import input.
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "PENDIENTE"
	InvoiceStatusPartial InvoiceStatus = "PARCIAL"
	InvoiceStatusPaid    InvoiceStatus = "PAGADA"
)

// ComputeInvoiceStatus derives the invoice status from the billed and paid
// amounts. Negative or missing paid amounts count as unpaid.
func ComputeInvoiceStatus(billed, paid float64) InvoiceStatus {
	switch {
	case paid <= 0:
		return InvoiceStatusPending
	case paid < billed:
		return InvoiceStatusPartial
	default:
		return InvoiceStatusPaid
	}
}
