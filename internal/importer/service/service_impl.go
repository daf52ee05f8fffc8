package service

import (
	"context"
	"os"
	"time"

	"github.com/bwmarrin/snowflake"
	billingdomain "github.com/smallbiznis/backoffice/internal/billing/domain"
	clientdomain "github.com/smallbiznis/backoffice/internal/client/domain"
	"github.com/smallbiznis/backoffice/internal/config"
	historydomain "github.com/smallbiznis/backoffice/internal/history/domain"
	"github.com/smallbiznis/backoffice/internal/importer/domain"
	"github.com/smallbiznis/backoffice/internal/importer/parser"
	"github.com/smallbiznis/backoffice/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Cfg     *config.ImportConfigHolder
	Repo    domain.Repository
	History historydomain.Service
	Metrics *metrics.ImportMetrics
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	cfg     *config.ImportConfigHolder
	repo    domain.Repository
	history historydomain.Service
	metrics *metrics.ImportMetrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("importer.service"),
		genID:   p.GenID,
		cfg:     p.Cfg,
		repo:    p.Repo,
		history: p.History,
		metrics: p.Metrics,
	}
}

// Migrate runs the whole pipeline for one uploaded file: parse, validate
// every row, reconcile all rows in one relational transaction, then
// reconcile the history projection best-effort. The source file is removed
// on every exit path.
func (s *Service) Migrate(ctx context.Context, path string) (domain.Result, error) {
	defer s.removeSource(path)

	cfg := s.cfg.Get()

	records, err := parser.Parse(path, cfg.Columns)
	if err != nil {
		s.metrics.FilesTotal.WithLabelValues(metrics.StatusAborted).Inc()
		return domain.Result{}, err
	}
	if len(records) == 0 {
		s.metrics.FilesTotal.WithLabelValues(metrics.StatusAborted).Inc()
		return domain.Result{}, domain.ErrEmptyWorkbook
	}

	rows, rowErrors := s.mapAll(records, cfg)
	if len(rowErrors) > 0 {
		s.metrics.FilesTotal.WithLabelValues(metrics.StatusAborted).Inc()
		return domain.Result{}, &domain.ValidationError{RowErrors: rowErrors}
	}

	touched := make(map[string]struct{})
	stale := make(map[string]struct{})

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			if err := s.reconcileRow(ctx, tx, row, touched, stale); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.FilesTotal.WithLabelValues(metrics.StatusRolledBack).Inc()
		s.log.Error("import transaction rolled back",
			zap.String("file", path),
			zap.Int("rows", len(rows)),
			zap.Error(err),
		)
		return domain.Result{}, err
	}

	removed, synced := s.reconcileHistory(ctx, touched, stale)

	s.metrics.FilesTotal.WithLabelValues(metrics.StatusDone).Inc()
	s.metrics.RowsProcessed.Add(float64(len(rows)))
	s.log.Info("import completed",
		zap.Int("rows_processed", len(rows)),
		zap.Int("clients_touched", synced),
		zap.Int("stale_histories_removed", removed),
	)

	return domain.Result{
		RowsProcessed:         len(rows),
		ClientsTouched:        synced,
		StaleHistoriesRemoved: removed,
		Message:               "Migration completed successfully",
	}, nil
}

func (s *Service) mapAll(records []parser.Record, cfg config.ImportConfig) ([]domain.Row, []domain.RowError) {
	rows := make([]domain.Row, 0, len(records))
	var rowErrors []domain.RowError

	for _, rec := range records {
		row, errs := mapRecord(rec, cfg)
		if len(errs) > 0 {
			if len(rowErrors) < cfg.RowErrorLimit {
				rowErrors = append(rowErrors, domain.RowError{
					Row:    rec.RowNumber,
					Errors: errs,
				})
			}
			continue
		}
		rows = append(rows, row)
	}

	return rows, rowErrors
}

// reconcileRow upserts the four entities of one row in dependency order and
// records the emails it touched or displaced.
func (s *Service) reconcileRow(ctx context.Context, tx *gorm.DB, row domain.Row, touched, stale map[string]struct{}) error {
	now := time.Now().UTC()

	platformID, err := s.repo.UpsertPlatform(ctx, tx, &billingdomain.Platform{
		ID:        s.genID.Generate(),
		Name:      row.PlatformName,
		CreatedAt: now,
	})
	if err != nil {
		return err
	}

	existing, err := s.repo.FindClientByIdentification(ctx, tx, row.Identification)
	if err != nil {
		return err
	}

	clientID, err := s.repo.UpsertClient(ctx, tx, &clientdomain.Client{
		ID:             s.genID.Generate(),
		Identification: row.Identification,
		FullName:       row.FullName,
		Email:          row.Email,
		Phone:          row.Phone,
		Address:        row.Address,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return err
	}

	if existing != nil && existing.Email != "" && existing.Email != row.Email {
		stale[existing.Email] = struct{}{}
	}

	invoiceID, err := s.repo.UpsertInvoice(ctx, tx, &billingdomain.Invoice{
		ID:            s.genID.Generate(),
		InvoiceNumber: row.InvoiceNumber,
		BillingPeriod: row.BillingPeriod,
		BilledAmount:  row.BilledAmount,
		PaidAmount:    row.PaidAmount,
		Status:        billingdomain.ComputeInvoiceStatus(row.BilledAmount, row.PaidAmount),
		ClientID:      clientID,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		return err
	}

	_, err = s.repo.UpsertTransaction(ctx, tx, &billingdomain.Transaction{
		ID:              s.genID.Generate(),
		TxnCode:         row.TxnCode,
		TxnDate:         row.TxnDate,
		Amount:          row.Amount,
		Status:          row.Status,
		TransactionType: row.TransactionType,
		ClientID:        clientID,
		PlatformID:      platformID,
		InvoiceID:       invoiceID,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
	if err != nil {
		return err
	}

	touched[row.Email] = struct{}{}
	return nil
}

// reconcileHistory runs after commit against a store with no shared
// transaction. Failures are warnings: the relational data is durable and
// the projection is rebuildable, so the loop continues through the full
// set instead of aborting.
func (s *Service) reconcileHistory(ctx context.Context, touched, stale map[string]struct{}) (removed, synced int) {
	for email := range stale {
		if _, ok := touched[email]; ok {
			continue
		}
		if err := s.history.RemoveByEmail(ctx, email); err != nil {
			s.metrics.HistorySyncFailures.Inc()
			s.log.Warn("stale history removal failed",
				zap.String("email", email),
				zap.Error(err),
			)
			continue
		}
		removed++
	}

	for email := range touched {
		if _, err := s.history.SyncByEmail(ctx, email); err != nil {
			s.metrics.HistorySyncFailures.Inc()
			s.log.Warn("history sync failed",
				zap.String("email", email),
				zap.Error(err),
			)
			continue
		}
		synced++
	}

	return removed, synced
}

func (s *Service) removeSource(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Warn("upload cleanup failed",
			zap.String("file", path),
			zap.Error(err),
		)
	}
}
