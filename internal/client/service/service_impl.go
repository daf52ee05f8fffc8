package service

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/internal/client/domain"
	historydomain "github.com/smallbiznis/backoffice/internal/history/domain"
	"github.com/smallbiznis/backoffice/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Repo    domain.Repository
	History historydomain.Service
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	repo    domain.Repository
	history historydomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("client.service"),
		genID:   p.GenID,
		repo:    p.Repo,
		history: p.History,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Client, error) {
	return s.repo.List(ctx, s.db)
}

func (s *Service) GetByID(ctx context.Context, rawID string) (domain.Client, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.Client{}, err
	}

	client, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Client{}, err
	}
	if client == nil {
		return domain.Client{}, domain.ErrNotFound
	}
	return *client, nil
}

func (s *Service) Create(ctx context.Context, req domain.CreateClientRequest) (domain.Client, error) {
	now := time.Now().UTC()
	client := domain.Client{
		ID:             s.genID.Generate(),
		Identification: strings.TrimSpace(req.Identification),
		FullName:       strings.TrimSpace(req.FullName),
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:          strings.TrimSpace(req.Phone),
		Address:        strings.TrimSpace(req.Address),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := validateClient(client); err != nil {
		return domain.Client{}, err
	}

	existing, err := s.repo.FindByIdentification(ctx, s.db, client.Identification)
	if err != nil {
		return domain.Client{}, err
	}
	if existing != nil {
		return domain.Client{}, domain.ErrDuplicate
	}

	// The unique constraints still back this up for concurrent creates and
	// email collisions.
	if err := s.repo.Insert(ctx, s.db, &client); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Client{}, domain.ErrDuplicate
		}
		return domain.Client{}, err
	}

	s.syncHistory(ctx, client.Email)
	return client, nil
}

func (s *Service) Update(ctx context.Context, rawID string, req domain.UpdateClientRequest) (domain.Client, error) {
	id, err := s.parseID(rawID)
	if err != nil {
		return domain.Client{}, err
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Client{}, err
	}
	if existing == nil {
		return domain.Client{}, domain.ErrNotFound
	}

	if req.Identification == nil && req.FullName == nil && req.Email == nil &&
		req.Phone == nil && req.Address == nil {
		return domain.Client{}, domain.ErrEmptyUpdate
	}

	updated := *existing
	if req.Identification != nil {
		updated.Identification = strings.TrimSpace(*req.Identification)
	}
	if req.FullName != nil {
		updated.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Email != nil {
		updated.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Phone != nil {
		updated.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		updated.Address = strings.TrimSpace(*req.Address)
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := validateClient(updated); err != nil {
		return domain.Client{}, err
	}

	if err := s.repo.Update(ctx, s.db, &updated); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Client{}, domain.ErrDuplicate
		}
		return domain.Client{}, err
	}

	// An email change strands the old projection document; drop it before
	// writing the new one.
	if existing.Email != updated.Email {
		if err := s.history.RemoveByEmail(ctx, existing.Email); err != nil {
			s.log.Warn("stale history removal failed",
				zap.String("email", existing.Email),
				zap.Error(err),
			)
		}
	}
	s.syncHistory(ctx, updated.Email)

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, rawID string) error {
	id, err := s.parseID(rawID)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return domain.ErrNotFound
	}

	deleted, err := s.repo.Delete(ctx, s.db, id)
	if err != nil {
		if db.IsForeignKeyErr(err) {
			return domain.ErrHasRelatedRecords
		}
		return err
	}
	if !deleted {
		return domain.ErrNotFound
	}

	if err := s.history.RemoveByEmail(ctx, existing.Email); err != nil {
		s.log.Warn("history removal failed",
			zap.String("email", existing.Email),
			zap.Error(err),
		)
	}
	return nil
}

func (s *Service) syncHistory(ctx context.Context, email string) {
	if _, err := s.history.SyncByEmail(ctx, email); err != nil {
		s.log.Warn("history sync failed",
			zap.String("email", email),
			zap.Error(err),
		)
	}
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func validateClient(c domain.Client) error {
	if c.Identification == "" || len(c.Identification) > 50 {
		return domain.ErrInvalidIdentification
	}
	if c.FullName == "" || len(c.FullName) > 150 {
		return domain.ErrInvalidFullName
	}
	if c.Email == "" || len(c.Email) > 150 || !emailPattern.MatchString(c.Email) {
		return domain.ErrInvalidEmail
	}
	return nil
}
