package domain

import (
	billingdomain "github.com/smallbiznis/backoffice/internal/billing/domain"
)

// Registry lists the resources served by the generic CRUD surface, in
// presentation order.
func Registry() []Resource {
	return []Resource{
		{
			Key:     "clients",
			Label:   "Clients",
			Table:   "clients",
			IDField: "id",
			OrderBy: "id ASC",
			SelectFields: []string{
				"id", "identification", "full_name", "email", "phone", "address",
				"created_at", "updated_at",
			},
			Fields: []Field{
				{Name: "identification", Type: FieldString, Required: true, MaxLength: 50, Create: true, Update: true},
				{Name: "full_name", Type: FieldString, Required: true, MaxLength: 150, Create: true, Update: true},
				{Name: "email", Type: FieldEmail, Required: true, MaxLength: 150, Create: true, Update: true},
				{Name: "phone", Type: FieldString, MaxLength: 50, Nullable: true, Create: true, Update: true},
				{Name: "address", Type: FieldString, Nullable: true, Create: true, Update: true},
			},
		},
		{
			Key:          "platforms",
			Label:        "Platforms",
			Table:        "platforms",
			IDField:      "id",
			OrderBy:      "id ASC",
			SelectFields: []string{"id", "name", "created_at"},
			Fields: []Field{
				{Name: "name", Type: FieldString, Required: true, MaxLength: 50, Create: true, Update: true},
			},
		},
		{
			Key:     "invoices",
			Label:   "Invoices",
			Table:   "invoices",
			IDField: "id",
			OrderBy: "id ASC",
			SelectFields: []string{
				"id", "invoice_number", "billing_period", "billed_amount", "paid_amount",
				"status", "client_id", "created_at", "updated_at",
			},
			Fields: []Field{
				{Name: "invoice_number", Type: FieldString, Required: true, MaxLength: 50, Create: true, Update: true},
				{Name: "billing_period", Type: FieldString, Required: true, MaxLength: 7, Create: true, Update: true},
				{Name: "billed_amount", Type: FieldNumber, Required: true, Create: true, Update: true},
				{Name: "paid_amount", Type: FieldNumber, Required: true, Create: true, Update: true},
				{
					Name: "status", Type: FieldEnum, Required: true,
					Enum: []string{
						string(billingdomain.InvoiceStatusPending),
						string(billingdomain.InvoiceStatusPartial),
						string(billingdomain.InvoiceStatusPaid),
					},
					Create: true, Update: true,
				},
				{Name: "client_id", Type: FieldInteger, Required: true, Create: true, Update: true},
			},
		},
		{
			Key:     "transactions",
			Label:   "Transactions",
			Table:   "transactions",
			IDField: "id",
			OrderBy: "id ASC",
			SelectFields: []string{
				"id", "txn_code", "txn_date", "amount", "status", "transaction_type",
				"client_id", "platform_id", "invoice_id", "created_at", "updated_at",
			},
			Fields: []Field{
				{Name: "txn_code", Type: FieldString, Required: true, MaxLength: 50, Create: true, Update: true},
				{Name: "txn_date", Type: FieldDate, Required: true, Create: true, Update: true},
				{Name: "amount", Type: FieldNumber, Required: true, Create: true, Update: true},
				{
					Name: "status", Type: FieldEnum, Required: true,
					Enum: []string{
						billingdomain.TxnStatusPending,
						billingdomain.TxnStatusCompleted,
						billingdomain.TxnStatusFailed,
					},
					Create: true, Update: true,
				},
				{Name: "transaction_type", Type: FieldString, Required: true, MaxLength: 50, Create: true, Update: true},
				{Name: "client_id", Type: FieldInteger, Required: true, Create: true, Update: true},
				{Name: "platform_id", Type: FieldInteger, Required: true, Create: true, Update: true},
				{Name: "invoice_id", Type: FieldInteger, Required: true, Create: true, Update: true},
			},
		},
	}
}

// Lookup returns the resource registered under key.
func Lookup(key string) (Resource, bool) {
	for _, resource := range Registry() {
		if resource.Key == key {
			return resource, true
		}
	}
	return Resource{}, false
}
