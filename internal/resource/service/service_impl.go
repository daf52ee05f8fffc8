package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/internal/resource/domain"
	"github.com/smallbiznis/backoffice/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("resource.service"),
		genID: p.GenID,
		repo:  p.Repo,
	}
}

func (s *Service) ListResources() []domain.Meta {
	registry := domain.Registry()
	metas := make([]domain.Meta, 0, len(registry))
	for _, res := range registry {
		metas = append(metas, res.Meta())
	}
	return metas
}

func (s *Service) List(ctx context.Context, key string) ([]map[string]any, error) {
	res, ok := domain.Lookup(key)
	if !ok {
		return nil, domain.ErrUnknownResource
	}
	return s.repo.List(ctx, s.db, res)
}

func (s *Service) GetByID(ctx context.Context, key, rawID string) (map[string]any, error) {
	res, ok := domain.Lookup(key)
	if !ok {
		return nil, domain.ErrUnknownResource
	}
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	row, err := s.repo.GetByID(ctx, s.db, res, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrRecordNotFound
	}
	return row, nil
}

func (s *Service) Create(ctx context.Context, key string, payload map[string]any) (map[string]any, error) {
	res, ok := domain.Lookup(key)
	if !ok {
		return nil, domain.ErrUnknownResource
	}

	values, problems := validatePayload(res, payload, modeCreate)
	if len(problems) > 0 {
		return nil, &domain.PayloadError{Problems: problems}
	}

	id := s.genID.Generate()
	values[res.IDField] = id
	now := time.Now().UTC()
	if hasColumn(res, "created_at") {
		values["created_at"] = now
	}
	if hasColumn(res, "updated_at") {
		values["updated_at"] = now
	}

	if err := s.repo.Insert(ctx, s.db, res, values); err != nil {
		return nil, mapStoreError(err)
	}

	row, err := s.repo.GetByID(ctx, s.db, res, id)
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) Update(ctx context.Context, key, rawID string, payload map[string]any) (map[string]any, error) {
	res, ok := domain.Lookup(key)
	if !ok {
		return nil, domain.ErrUnknownResource
	}
	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, s.db, res, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrRecordNotFound
	}

	values, problems := validatePayload(res, payload, modeUpdate)
	if len(problems) > 0 {
		return nil, &domain.PayloadError{Problems: problems}
	}
	if hasColumn(res, "updated_at") {
		values["updated_at"] = time.Now().UTC()
	}

	if err := s.repo.Update(ctx, s.db, res, id, values); err != nil {
		return nil, mapStoreError(err)
	}

	row, err := s.repo.GetByID(ctx, s.db, res, id)
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (s *Service) Delete(ctx context.Context, key, rawID string) error {
	res, ok := domain.Lookup(key)
	if !ok {
		return domain.ErrUnknownResource
	}
	id, err := parseID(rawID)
	if err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, s.db, res, id)
	if err != nil {
		// A foreign key failure on delete means children still reference
		// the row, not that a referenced parent is missing.
		if db.IsForeignKeyErr(err) {
			return domain.ErrRecordReferenced
		}
		return mapStoreError(err)
	}
	if !deleted {
		return domain.ErrRecordNotFound
	}
	return nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func hasColumn(res domain.Resource, name string) bool {
	for _, column := range res.SelectFields {
		if column == name {
			return true
		}
	}
	return false
}

func mapStoreError(err error) error {
	switch {
	case db.IsDuplicateKeyErr(err):
		return domain.ErrDuplicateValue
	case db.IsForeignKeyErr(err):
		return domain.ErrRelatedRecordMissing
	default:
		return err
	}
}
