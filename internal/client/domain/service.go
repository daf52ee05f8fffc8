package domain

import (
	"context"
	"errors"
)

type CreateClientRequest struct {
	Identification string `json:"identification"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
}

// UpdateClientRequest carries a partial update; nil fields are untouched.
type UpdateClientRequest struct {
	Identification *string `json:"identification"`
	FullName       *string `json:"full_name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	Address        *string `json:"address"`
}

type Service interface {
	List(ctx context.Context) ([]Client, error)
	GetByID(ctx context.Context, id string) (Client, error)
	Create(ctx context.Context, req CreateClientRequest) (Client, error)
	Update(ctx context.Context, id string, req UpdateClientRequest) (Client, error)
	Delete(ctx context.Context, id string) error
}

var (
	ErrNotFound              = errors.New("client_not_found")
	ErrInvalidID             = errors.New("invalid_client_id")
	ErrInvalidIdentification = errors.New("invalid_identification")
	ErrInvalidFullName       = errors.New("invalid_full_name")
	ErrInvalidEmail          = errors.New("invalid_email")
	ErrEmptyUpdate           = errors.New("empty_update")
	ErrDuplicate             = errors.New("client_already_exists")
	ErrHasRelatedRecords     = errors.New("client_has_related_records")
)
