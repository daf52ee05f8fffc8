package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	billingdomain "github.com/smallbiznis/backoffice/internal/billing/domain"
	clientdomain "github.com/smallbiznis/backoffice/internal/client/domain"
	"github.com/smallbiznis/backoffice/internal/config"
	historydomain "github.com/smallbiznis/backoffice/internal/history/domain"
	"github.com/smallbiznis/backoffice/internal/importer/domain"
	"github.com/smallbiznis/backoffice/internal/importer/repository"
	"github.com/smallbiznis/backoffice/internal/observability/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// -- Fakes --

type historyStub struct {
	synced  []string
	removed []string
	failFor map[string]error
}

func newHistoryStub() *historyStub {
	return &historyStub{failFor: map[string]error{}}
}

func (h *historyStub) SyncByEmail(_ context.Context, email string) (*historydomain.ClientHistory, error) {
	if err := h.failFor[email]; err != nil {
		return nil, err
	}
	h.synced = append(h.synced, email)
	return &historydomain.ClientHistory{ClientEmail: email}, nil
}

func (h *historyStub) RemoveByEmail(_ context.Context, email string) error {
	if err := h.failFor[email]; err != nil {
		return err
	}
	h.removed = append(h.removed, email)
	return nil
}

func (h *historyStub) GetByEmail(context.Context, string) (*historydomain.ClientHistory, error) {
	return nil, historydomain.ErrNotFound
}

func (h *historyStub) RebuildAll(context.Context) (int, error) { return 0, nil }

// failingRepo delegates to a real repository but fails on one txn code,
// exercising the rollback path.
type failingRepo struct {
	domain.Repository
	failOn string
}

func (r *failingRepo) UpsertTransaction(ctx context.Context, tx *gorm.DB, txn *billingdomain.Transaction) (snowflake.ID, error) {
	if txn.TxnCode == r.failOn {
		return 0, errors.New("storage failure")
	}
	return r.Repository.UpsertTransaction(ctx, tx, txn)
}

// -- Helpers --

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&clientdomain.Client{},
		&billingdomain.Platform{},
		&billingdomain.Invoice{},
		&billingdomain.Transaction{},
	))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, history historydomain.Service, repo domain.Repository) domain.Service {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	if repo == nil {
		repo = repository.Provide()
	}

	return New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Cfg:     config.NewStaticImportConfigHolder(config.DefaultImportConfig()),
		Repo:    repo,
		History: history,
		Metrics: metrics.NewImportMetricsWith(prometheus.NewRegistry()),
	})
}

type importRow struct {
	txnCode        string
	txnDate        string
	amount         string
	status         string
	fullName       string
	identification string
	email          string
	platform       string
	invoiceNumber  string
	billingPeriod  string
	billedAmount   string
	paidAmount     string
}

func validImportRow(txnCode string) importRow {
	return importRow{
		txnCode:        txnCode,
		txnDate:        "44562",
		amount:         "100.00",
		status:         "Completada",
		fullName:       "Ana García",
		identification: "1712345678",
		email:          "ana@example.com",
		platform:       "PayPhone",
		invoiceNumber:  "FAC-001",
		billingPeriod:  "2022-01",
		billedAmount:   "100.00",
		paidAmount:     "100.00",
	}
}

func writeImportCSV(t *testing.T, rows ...importRow) string {
	t.Helper()
	cols := config.DefaultImportConfig().Columns

	out := [][]string{{
		cols.TxnCode, cols.TxnDate, cols.Amount, cols.Status, cols.TransactionType,
		cols.FullName, cols.Identification, cols.Address, cols.Phone, cols.Email,
		cols.PlatformName, cols.InvoiceNumber, cols.BillingPeriod, cols.BilledAmount, cols.PaidAmount,
	}}
	for _, row := range rows {
		out = append(out, []string{
			row.txnCode, row.txnDate, row.amount, row.status, "",
			row.fullName, row.identification, "Av. Amazonas", "0998765432", row.email,
			row.platform, row.invoiceNumber, row.billingPeriod, row.billedAmount, row.paidAmount,
		})
	}

	path := filepath.Join(t.TempDir(), uuid.NewString()+".csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, csv.NewWriter(f).WriteAll(out))
	return path
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

// -- Tests --

func TestMigrate_Success(t *testing.T) {
	db := newTestDB(t)
	history := newHistoryStub()
	svc := newTestService(t, db, history, nil)

	second := validImportRow("TXN-002")
	second.invoiceNumber = "FAC-002"
	second.paidAmount = "40.00"
	path := writeImportCSV(t, validImportRow("TXN-001"), second)

	result, err := svc.Migrate(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 2, result.RowsProcessed)
	assert.Equal(t, 1, result.ClientsTouched)
	assert.Equal(t, 0, result.StaleHistoriesRemoved)
	assert.Equal(t, "Migration completed successfully", result.Message)

	assert.Equal(t, int64(1), countRows(t, db, &clientdomain.Client{}))
	assert.Equal(t, int64(1), countRows(t, db, &billingdomain.Platform{}))
	assert.Equal(t, int64(2), countRows(t, db, &billingdomain.Invoice{}))
	assert.Equal(t, int64(2), countRows(t, db, &billingdomain.Transaction{}))

	var paid, partial billingdomain.Invoice
	require.NoError(t, db.Take(&paid, "invoice_number = ?", "FAC-001").Error)
	require.NoError(t, db.Take(&partial, "invoice_number = ?", "FAC-002").Error)
	assert.Equal(t, billingdomain.InvoiceStatusPaid, paid.Status)
	assert.Equal(t, billingdomain.InvoiceStatusPartial, partial.Status)

	assert.Equal(t, []string{"ana@example.com"}, history.synced)
	assert.Empty(t, history.removed)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMigrate_BlankPaidAmountLeavesInvoicePending(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, newHistoryStub(), nil)

	unpaid := validImportRow("TXN-001")
	unpaid.paidAmount = ""
	path := writeImportCSV(t, unpaid)

	result, err := svc.Migrate(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.RowsProcessed)

	var invoice billingdomain.Invoice
	require.NoError(t, db.Take(&invoice, "invoice_number = ?", "FAC-001").Error)
	assert.Equal(t, billingdomain.InvoiceStatusPending, invoice.Status)
	assert.Zero(t, invoice.PaidAmount)
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)
	history := newHistoryStub()
	svc := newTestService(t, db, history, nil)

	first, err := svc.Migrate(context.Background(), writeImportCSV(t, validImportRow("TXN-001")))
	require.NoError(t, err)

	var clientBefore clientdomain.Client
	require.NoError(t, db.Take(&clientBefore, "identification = ?", "1712345678").Error)

	second, err := svc.Migrate(context.Background(), writeImportCSV(t, validImportRow("TXN-001")))
	require.NoError(t, err)

	assert.Equal(t, first.RowsProcessed, second.RowsProcessed)
	assert.Equal(t, 0, second.StaleHistoriesRemoved)

	assert.Equal(t, int64(1), countRows(t, db, &clientdomain.Client{}))
	assert.Equal(t, int64(1), countRows(t, db, &billingdomain.Platform{}))
	assert.Equal(t, int64(1), countRows(t, db, &billingdomain.Invoice{}))
	assert.Equal(t, int64(1), countRows(t, db, &billingdomain.Transaction{}))

	var clientAfter clientdomain.Client
	require.NoError(t, db.Take(&clientAfter, "identification = ?", "1712345678").Error)
	assert.Equal(t, clientBefore.ID, clientAfter.ID)
}

func TestMigrate_ValidationAbortsWholeFile(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, newHistoryStub(), nil)

	bad := validImportRow("TXN-002")
	bad.email = ""
	bad.billingPeriod = "enero"
	path := writeImportCSV(t, validImportRow("TXN-001"), bad)

	_, err := svc.Migrate(context.Background(), path)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.RowErrors, 1)
	assert.Equal(t, 3, vErr.RowErrors[0].Row)
	assert.Contains(t, vErr.RowErrors[0].Errors, "email is required")
	assert.Contains(t, vErr.RowErrors[0].Errors, "billing_period must have format YYYY-MM")

	assert.Equal(t, int64(0), countRows(t, db, &clientdomain.Client{}))
	assert.Equal(t, int64(0), countRows(t, db, &billingdomain.Transaction{}))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMigrate_RejectsOutOfRangeBillingMonth(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, newHistoryStub(), nil)

	bad := validImportRow("TXN-001")
	bad.billingPeriod = "2024-13"
	path := writeImportCSV(t, bad)

	_, err := svc.Migrate(context.Background(), path)

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.RowErrors, 1)
	assert.Contains(t, vErr.RowErrors[0].Errors, "billing_period must have format YYYY-MM")

	assert.Equal(t, int64(0), countRows(t, db, &clientdomain.Client{}))
	assert.Equal(t, int64(0), countRows(t, db, &billingdomain.Invoice{}))
}

func TestMigrate_RowErrorLimit(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, newHistoryStub(), nil)

	rows := make([]importRow, 0, 30)
	for i := 0; i < 30; i++ {
		bad := validImportRow(fmt.Sprintf("TXN-%03d", i))
		bad.amount = "not a number"
		rows = append(rows, bad)
	}

	_, err := svc.Migrate(context.Background(), writeImportCSV(t, rows...))

	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Len(t, vErr.RowErrors, config.DefaultImportConfig().RowErrorLimit)
}

func TestMigrate_RollbackLeavesNothingBehind(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, newHistoryStub(), &failingRepo{
		Repository: repository.Provide(),
		failOn:     "TXN-002",
	})

	second := validImportRow("TXN-002")
	second.invoiceNumber = "FAC-002"
	path := writeImportCSV(t, validImportRow("TXN-001"), second)

	_, err := svc.Migrate(context.Background(), path)
	require.Error(t, err)

	assert.Equal(t, int64(0), countRows(t, db, &clientdomain.Client{}))
	assert.Equal(t, int64(0), countRows(t, db, &billingdomain.Platform{}))
	assert.Equal(t, int64(0), countRows(t, db, &billingdomain.Invoice{}))
	assert.Equal(t, int64(0), countRows(t, db, &billingdomain.Transaction{}))

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMigrate_EmailChangeRemovesStaleHistory(t *testing.T) {
	db := newTestDB(t)
	history := newHistoryStub()
	svc := newTestService(t, db, history, nil)

	_, err := svc.Migrate(context.Background(), writeImportCSV(t, validImportRow("TXN-001")))
	require.NoError(t, err)

	moved := validImportRow("TXN-002")
	moved.email = "ana.new@example.com"
	result, err := svc.Migrate(context.Background(), writeImportCSV(t, moved))
	require.NoError(t, err)

	assert.Equal(t, 1, result.ClientsTouched)
	assert.Equal(t, 1, result.StaleHistoriesRemoved)
	assert.Contains(t, history.removed, "ana@example.com")
	assert.Contains(t, history.synced, "ana.new@example.com")

	assert.Equal(t, int64(1), countRows(t, db, &clientdomain.Client{}))
	var client clientdomain.Client
	require.NoError(t, db.Take(&client, "identification = ?", "1712345678").Error)
	assert.Equal(t, "ana.new@example.com", client.Email)
}

func TestMigrate_HistoryFailureIsNotFatal(t *testing.T) {
	db := newTestDB(t)
	history := newHistoryStub()
	history.failFor["ana@example.com"] = errors.New("store unavailable")
	svc := newTestService(t, db, history, nil)

	result, err := svc.Migrate(context.Background(), writeImportCSV(t, validImportRow("TXN-001")))
	require.NoError(t, err)

	assert.Equal(t, 1, result.RowsProcessed)
	assert.Equal(t, 0, result.ClientsTouched)
	assert.Equal(t, int64(1), countRows(t, db, &billingdomain.Transaction{}))
}

func TestMigrate_EmptyWorkbook(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db, newHistoryStub(), nil)

	path := writeImportCSV(t)
	_, err := svc.Migrate(context.Background(), path)
	assert.ErrorIs(t, err, domain.ErrEmptyWorkbook)
}
