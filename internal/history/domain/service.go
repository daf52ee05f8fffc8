package domain

import (
	"context"
	"errors"
)

// Store is the document-store side of the projection: upsert and delete by
// the unique email key.
type Store interface {
	Upsert(ctx context.Context, doc *ClientHistory) error
	Delete(ctx context.Context, email string) error
	Get(ctx context.Context, email string) (*ClientHistory, error)
}

type Service interface {
	// SyncByEmail rebuilds the history document for one client email from
	// the relational store and replaces it wholesale. Returns nil when no
	// client owns the email.
	SyncByEmail(ctx context.Context, email string) (*ClientHistory, error)
	// RemoveByEmail deletes the history document for an email.
	RemoveByEmail(ctx context.Context, email string) error
	// GetByEmail reads a document, rebuilding it lazily when absent.
	GetByEmail(ctx context.Context, email string) (*ClientHistory, error)
	// RebuildAll re-derives every client's document from scratch and
	// returns how many were written.
	RebuildAll(ctx context.Context) (int, error)
}

var ErrNotFound = errors.New("history_not_found")
