package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Client struct {
	ID             snowflake.ID `gorm:"primaryKey" json:"id"`
	Identification string       `gorm:"uniqueIndex;not null;size:50" json:"identification"`
	FullName       string       `gorm:"column:full_name;not null;size:150" json:"full_name"`
	Email          string       `gorm:"uniqueIndex;not null;size:150" json:"email"`
	Phone          string       `gorm:"size:50" json:"phone"`
	Address        string       `json:"address"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}
