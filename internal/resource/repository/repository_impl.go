package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/backoffice/internal/resource/domain"
	"gorm.io/gorm"
)

// All identifiers interpolated below come from the static schema registry,
// never from request input.
type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) List(ctx context.Context, db *gorm.DB, res domain.Resource) ([]map[string]any, error) {
	var rows []map[string]any
	err := db.WithContext(ctx).
		Table(res.Table).
		Select(strings.Join(res.SelectFields, ", ")).
		Order(res.OrderBy).
		Limit(500).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repo) GetByID(ctx context.Context, db *gorm.DB, res domain.Resource, id snowflake.ID) (map[string]any, error) {
	var row map[string]any
	err := db.WithContext(ctx).
		Table(res.Table).
		Select(strings.Join(res.SelectFields, ", ")).
		Where(res.IDField+" = ?", id).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, res domain.Resource, values map[string]any) error {
	return db.WithContext(ctx).Table(res.Table).Create(values).Error
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, res domain.Resource, id snowflake.ID, values map[string]any) error {
	return db.WithContext(ctx).
		Table(res.Table).
		Where(res.IDField+" = ?", id).
		Updates(values).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, res domain.Resource, id snowflake.ID) (bool, error) {
	result := db.WithContext(ctx).
		Table(res.Table).
		Where(res.IDField+" = ?", id).
		Delete(nil)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
