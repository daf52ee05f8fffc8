package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	List(ctx context.Context, db *gorm.DB, res Resource) ([]map[string]any, error)
	GetByID(ctx context.Context, db *gorm.DB, res Resource, id snowflake.ID) (map[string]any, error)
	Insert(ctx context.Context, db *gorm.DB, res Resource, values map[string]any) error
	Update(ctx context.Context, db *gorm.DB, res Resource, id snowflake.ID, values map[string]any) error
	Delete(ctx context.Context, db *gorm.DB, res Resource, id snowflake.ID) (bool, error)
}
