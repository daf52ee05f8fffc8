package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/smallbiznis/backoffice/internal/config"
	"github.com/smallbiznis/backoffice/internal/importer/domain"
	"github.com/smallbiznis/backoffice/internal/importer/parser"
)

var billingPeriodPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// mapRecord converts one raw record into a typed row or a list of field
// errors. It never fails the process; every problem surfaces as an error
// string naming the field.
func mapRecord(rec parser.Record, cfg config.ImportConfig) (domain.Row, []string) {
	cols := cfg.Columns
	get := func(label string) string {
		return strings.TrimSpace(rec.Values[label])
	}

	row := domain.Row{
		RowNumber:       rec.RowNumber,
		TxnCode:         get(cols.TxnCode),
		Status:          get(cols.Status),
		TransactionType: get(cols.TransactionType),
		FullName:        get(cols.FullName),
		Identification:  get(cols.Identification),
		Address:         get(cols.Address),
		Phone:           get(cols.Phone),
		Email:           strings.ToLower(get(cols.Email)),
		PlatformName:    get(cols.PlatformName),
		InvoiceNumber:   get(cols.InvoiceNumber),
		BillingPeriod:   get(cols.BillingPeriod),
	}
	if row.TransactionType == "" {
		row.TransactionType = cfg.DefaultTransactionType
	}

	var errs []string

	required := []struct {
		name  string
		value string
	}{
		{"txn_code", row.TxnCode},
		{"status", row.Status},
		{"full_name", row.FullName},
		{"identification", row.Identification},
		{"email", row.Email},
		{"platform_name", row.PlatformName},
		{"invoice_number", row.InvoiceNumber},
		{"billing_period", row.BillingPeriod},
	}
	for _, field := range required {
		if field.value == "" {
			errs = append(errs, field.name+" is required")
		}
	}

	if txnDate, ok := normalizeDate(get(cols.TxnDate)); ok {
		row.TxnDate = txnDate
	} else {
		errs = append(errs, "txn_date is invalid")
	}

	if amount, ok := parseAmount(get(cols.Amount)); ok {
		row.Amount = amount
	} else {
		errs = append(errs, "amount is invalid")
	}
	if billed, ok := parseAmount(get(cols.BilledAmount)); ok {
		row.BilledAmount = billed
	} else {
		errs = append(errs, "billed_amount is invalid")
	}
	if paid, ok := parseAmount(get(cols.PaidAmount)); ok {
		row.PaidAmount = paid
	} else {
		errs = append(errs, "paid_amount is invalid")
	}

	if row.Status != "" && !containsString(cfg.TransactionStatuses, row.Status) {
		errs = append(errs, fmt.Sprintf("status must be one of: %s", strings.Join(cfg.TransactionStatuses, ", ")))
	}

	if row.BillingPeriod != "" && !validBillingPeriod(row.BillingPeriod) {
		errs = append(errs, "billing_period must have format YYYY-MM")
	}

	return row, errs
}

func validBillingPeriod(value string) bool {
	if !billingPeriodPattern.MatchString(value) {
		return false
	}
	month, err := strconv.Atoi(value[5:])
	return err == nil && month >= 1 && month <= 12
}

// Empty amount cells mean zero: unpaid invoices arrive with a blank paid
// column.
func parseAmount(value string) (float64, bool) {
	if value == "" {
		return 0, true
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return 0, false
	}
	return parsed, true
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
