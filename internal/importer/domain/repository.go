package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	billingdomain "github.com/smallbiznis/backoffice/internal/billing/domain"
	clientdomain "github.com/smallbiznis/backoffice/internal/client/domain"
	"gorm.io/gorm"
)

// Repository performs natural-key upserts for the reconciliation engine.
// Each upsert inserts the given record or, when its natural key already
// exists, overwrites the non-key columns in place; the returned id is the
// surviving surrogate id either way.
type Repository interface {
	UpsertPlatform(ctx context.Context, tx *gorm.DB, platform *billingdomain.Platform) (snowflake.ID, error)
	FindClientByIdentification(ctx context.Context, tx *gorm.DB, identification string) (*clientdomain.Client, error)
	UpsertClient(ctx context.Context, tx *gorm.DB, client *clientdomain.Client) (snowflake.ID, error)
	UpsertInvoice(ctx context.Context, tx *gorm.DB, invoice *billingdomain.Invoice) (snowflake.ID, error)
	UpsertTransaction(ctx context.Context, tx *gorm.DB, txn *billingdomain.Transaction) (snowflake.ID, error)
}
