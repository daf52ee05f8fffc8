package service

import (
	"context"
	"strings"
	"time"

	"github.com/smallbiznis/backoffice/internal/history/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	Repo  domain.Repository
	Store domain.Store
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	repo  domain.Repository
	store domain.Store
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("history.service"),
		repo:  p.Repo,
		store: p.Store,
	}
}

func (s *Service) SyncByEmail(ctx context.Context, email string) (*domain.ClientHistory, error) {
	email = normalizeEmail(email)

	rows, err := s.repo.FetchRowsByEmail(ctx, s.db, email)
	if err != nil {
		return nil, err
	}

	doc := buildDocument(rows)
	if doc == nil {
		return nil, nil
	}

	if err := s.store.Upsert(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Service) RemoveByEmail(ctx context.Context, email string) error {
	return s.store.Delete(ctx, normalizeEmail(email))
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*domain.ClientHistory, error) {
	email = normalizeEmail(email)

	doc, err := s.store.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if doc != nil {
		return doc, nil
	}

	// Absent documents are rebuilt on demand; the projection is always
	// re-derivable from the relational store.
	doc, err = s.SyncByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return doc, nil
}

func (s *Service) RebuildAll(ctx context.Context) (int, error) {
	emails, err := s.repo.ListClientEmails(ctx, s.db)
	if err != nil {
		return 0, err
	}

	rebuilt := 0
	for _, email := range emails {
		if _, err := s.SyncByEmail(ctx, email); err != nil {
			s.log.Warn("history rebuild failed",
				zap.String("email", email),
				zap.Error(err),
			)
			continue
		}
		rebuilt++
	}
	return rebuilt, nil
}

// buildDocument folds the join rows of one client into a history document.
// Returns nil when the email resolves to no client.
func buildDocument(rows []domain.HistoryRow) *domain.ClientHistory {
	if len(rows) == 0 {
		return nil
	}

	base := rows[0]
	doc := &domain.ClientHistory{
		ClientEmail:    base.Email,
		ClientName:     base.FullName,
		Identification: base.Identification,
		Transactions:   make([]domain.TransactionSummary, 0, len(rows)),
		UpdatedAt:      time.Now().UTC(),
	}

	for _, row := range rows {
		if row.TxnCode == nil || *row.TxnCode == "" {
			continue
		}
		summary := domain.TransactionSummary{
			TxnCode: *row.TxnCode,
		}
		if row.TxnDate != nil {
			summary.Date = *row.TxnDate
		}
		if row.PlatformName != nil {
			summary.Platform = *row.PlatformName
		}
		if row.InvoiceNumber != nil {
			summary.InvoiceNumber = *row.InvoiceNumber
		}
		if row.Amount != nil {
			summary.Amount = *row.Amount
		}
		if row.Status != nil {
			summary.Status = *row.Status
		}
		if row.TransactionType != nil {
			summary.TransactionType = *row.TransactionType
		}
		doc.Transactions = append(doc.Transactions, summary)
	}

	return doc
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
