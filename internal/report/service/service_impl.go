package service

import (
	"context"
	"strings"

	"github.com/smallbiznis/backoffice/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("report.service"),
		repo: p.Repo,
	}
}

func (s *Service) TotalPaidByClient(ctx context.Context) ([]domain.ClientTotalPaid, error) {
	return s.repo.TotalPaidByClient(ctx, s.db)
}

func (s *Service) PendingInvoices(ctx context.Context) ([]domain.PendingInvoice, error) {
	return s.repo.PendingInvoices(ctx, s.db)
}

func (s *Service) TransactionsByPlatform(ctx context.Context, platform string) ([]domain.PlatformTransaction, error) {
	platform = strings.TrimSpace(platform)
	if platform == "" {
		return nil, domain.ErrPlatformRequired
	}
	return s.repo.TransactionsByPlatform(ctx, s.db, platform)
}
