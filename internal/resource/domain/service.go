package domain

import (
	"context"
	"errors"
	"fmt"
)

type Service interface {
	ListResources() []Meta
	List(ctx context.Context, key string) ([]map[string]any, error)
	GetByID(ctx context.Context, key, rawID string) (map[string]any, error)
	Create(ctx context.Context, key string, payload map[string]any) (map[string]any, error)
	Update(ctx context.Context, key, rawID string, payload map[string]any) (map[string]any, error)
	Delete(ctx context.Context, key, rawID string) error
}

var (
	ErrUnknownResource      = errors.New("unknown_resource")
	ErrRecordNotFound       = errors.New("record_not_found")
	ErrInvalidID            = errors.New("invalid_record_id")
	ErrDuplicateValue       = errors.New("duplicate_value")
	ErrRelatedRecordMissing = errors.New("related_record_missing")
	ErrRecordReferenced     = errors.New("record_referenced")
)

// PayloadError reports field-level problems with a create or update payload.
type PayloadError struct {
	Problems []string `json:"problems"`
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("invalid payload: %d problem(s)", len(e.Problems))
}
