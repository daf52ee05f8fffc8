package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	billingdomain "github.com/smallbiznis/backoffice/internal/billing/domain"
	clientdomain "github.com/smallbiznis/backoffice/internal/client/domain"
	"github.com/smallbiznis/backoffice/internal/report/domain"
	"github.com/smallbiznis/backoffice/internal/report/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *snowflake.Node) {
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

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: repository.Provide(),
	})
	return svc, db, node
}

func seed(t *testing.T, db *gorm.DB, node *snowflake.Node) {
	t.Helper()

	ana := clientdomain.Client{ID: node.Generate(), Identification: "1712345678", FullName: "Ana García", Email: "ana@example.com"}
	luis := clientdomain.Client{ID: node.Generate(), Identification: "0912345678", FullName: "Luis Pérez", Email: "luis@example.com"}
	require.NoError(t, db.Create(&ana).Error)
	require.NoError(t, db.Create(&luis).Error)

	payphone := billingdomain.Platform{ID: node.Generate(), Name: "PayPhone"}
	datafast := billingdomain.Platform{ID: node.Generate(), Name: "Datafast"}
	require.NoError(t, db.Create(&payphone).Error)
	require.NoError(t, db.Create(&datafast).Error)

	invoices := []billingdomain.Invoice{
		{ID: node.Generate(), InvoiceNumber: "FAC-001", BillingPeriod: "2022-01", BilledAmount: 100, PaidAmount: 100, Status: billingdomain.InvoiceStatusPaid, ClientID: ana.ID},
		{ID: node.Generate(), InvoiceNumber: "FAC-002", BillingPeriod: "2022-02", BilledAmount: 200, PaidAmount: 50, Status: billingdomain.InvoiceStatusPartial, ClientID: ana.ID},
		{ID: node.Generate(), InvoiceNumber: "FAC-003", BillingPeriod: "2022-01", BilledAmount: 80, PaidAmount: 0, Status: billingdomain.InvoiceStatusPending, ClientID: luis.ID},
	}
	for i := range invoices {
		require.NoError(t, db.Create(&invoices[i]).Error)
	}

	base := time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC)
	txns := []billingdomain.Transaction{
		{ID: node.Generate(), TxnCode: "TXN-001", TxnDate: base, Amount: 100, Status: billingdomain.TxnStatusCompleted, TransactionType: "Pago de Factura", ClientID: ana.ID, PlatformID: payphone.ID, InvoiceID: invoices[0].ID},
		{ID: node.Generate(), TxnCode: "TXN-002", TxnDate: base.AddDate(0, 1, 0), Amount: 50, Status: billingdomain.TxnStatusCompleted, TransactionType: "Pago de Factura", ClientID: ana.ID, PlatformID: payphone.ID, InvoiceID: invoices[1].ID},
		{ID: node.Generate(), TxnCode: "TXN-003", TxnDate: base, Amount: 80, Status: billingdomain.TxnStatusPending, TransactionType: "Pago de Factura", ClientID: luis.ID, PlatformID: datafast.ID, InvoiceID: invoices[2].ID},
	}
	for i := range txns {
		require.NoError(t, db.Create(&txns[i]).Error)
	}
}

func TestTotalPaidByClient(t *testing.T) {
	svc, db, node := newTestService(t)
	seed(t, db, node)

	rows, err := svc.TotalPaidByClient(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// ordered by total paid, highest first
	assert.Equal(t, "ana@example.com", rows[0].Email)
	assert.Equal(t, 150.0, rows[0].TotalPaid)
	assert.Equal(t, "luis@example.com", rows[1].Email)
	assert.Equal(t, 0.0, rows[1].TotalPaid)
}

func TestTotalPaidByClient_ClientWithoutInvoices(t *testing.T) {
	svc, db, node := newTestService(t)

	client := clientdomain.Client{ID: node.Generate(), Identification: "0400000000", FullName: "Sin Facturas", Email: "none@example.com"}
	require.NoError(t, db.Create(&client).Error)

	rows, err := svc.TotalPaidByClient(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].TotalPaid)
}

func TestPendingInvoices(t *testing.T) {
	svc, db, node := newTestService(t)
	seed(t, db, node)

	rows, err := svc.PendingInvoices(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byNumber := map[string]float64{}
	for _, row := range rows {
		byNumber[row.InvoiceNumber] = row.Outstanding
	}
	assert.Equal(t, 150.0, byNumber["FAC-002"])
	assert.Equal(t, 80.0, byNumber["FAC-003"])
}

func TestTransactionsByPlatform(t *testing.T) {
	svc, db, node := newTestService(t)
	seed(t, db, node)

	rows, err := svc.TransactionsByPlatform(context.Background(), "PayPhone")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// newest first
	assert.Equal(t, "TXN-002", rows[0].TxnCode)
	assert.Equal(t, "TXN-001", rows[1].TxnCode)

	empty, err := svc.TransactionsByPlatform(context.Background(), "Desconocida")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestTransactionsByPlatform_RequiresPlatform(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.TransactionsByPlatform(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrPlatformRequired)
}
