package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context, db *gorm.DB) ([]Client, error)
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Client, error)
	FindByIdentification(ctx context.Context, db *gorm.DB, identification string) (*Client, error)
	Insert(ctx context.Context, db *gorm.DB, client *Client) error
	Update(ctx context.Context, db *gorm.DB, client *Client) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
}
