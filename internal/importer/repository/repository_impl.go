package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	billingdomain "github.com/smallbiznis/backoffice/internal/billing/domain"
	clientdomain "github.com/smallbiznis/backoffice/internal/client/domain"
	"github.com/smallbiznis/backoffice/internal/importer/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) UpsertPlatform(ctx context.Context, tx *gorm.DB, platform *billingdomain.Platform) (snowflake.ID, error) {
	err := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(platform).Error
	if err != nil {
		return 0, err
	}

	var existing billingdomain.Platform
	err = tx.WithContext(ctx).Select("id").Take(&existing, "name = ?", platform.Name).Error
	if err != nil {
		return 0, err
	}
	return existing.ID, nil
}

func (r *repo) FindClientByIdentification(ctx context.Context, tx *gorm.DB, identification string) (*clientdomain.Client, error) {
	var client clientdomain.Client
	err := tx.WithContext(ctx).Take(&client, "identification = ?", identification).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *repo) UpsertClient(ctx context.Context, tx *gorm.DB, client *clientdomain.Client) (snowflake.ID, error) {
	err := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "identification"}},
		DoUpdates: clause.AssignmentColumns([]string{"full_name", "email", "phone", "address", "updated_at"}),
	}).Create(client).Error
	if err != nil {
		return 0, err
	}

	var existing clientdomain.Client
	err = tx.WithContext(ctx).Select("id").Take(&existing, "identification = ?", client.Identification).Error
	if err != nil {
		return 0, err
	}
	return existing.ID, nil
}

func (r *repo) UpsertInvoice(ctx context.Context, tx *gorm.DB, invoice *billingdomain.Invoice) (snowflake.ID, error) {
	err := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "invoice_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"billing_period", "billed_amount", "paid_amount", "status", "client_id", "updated_at"}),
	}).Create(invoice).Error
	if err != nil {
		return 0, err
	}

	var existing billingdomain.Invoice
	err = tx.WithContext(ctx).Select("id").Take(&existing, "invoice_number = ?", invoice.InvoiceNumber).Error
	if err != nil {
		return 0, err
	}
	return existing.ID, nil
}

func (r *repo) UpsertTransaction(ctx context.Context, tx *gorm.DB, txn *billingdomain.Transaction) (snowflake.ID, error) {
	err := tx.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "txn_code"}},
		DoUpdates: clause.AssignmentColumns([]string{"txn_date", "amount", "status", "transaction_type", "client_id", "platform_id", "invoice_id", "updated_at"}),
	}).Create(txn).Error
	if err != nil {
		return 0, err
	}

	var existing billingdomain.Transaction
	err = tx.WithContext(ctx).Select("id").Take(&existing, "txn_code = ?", txn.TxnCode).Error
	if err != nil {
		return 0, err
	}
	return existing.ID, nil
}
