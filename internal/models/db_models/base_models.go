package db_models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"wanderplan/pkg/utils"
)

// BaseModel keeps timestamps as unix seconds; soft deletes go through gorm.DeletedAt.
type BaseModel struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CreatedAt int64          `gorm:"autoCreateTime"`
	UpdatedAt int64          `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.CreatedAt == 0 {
		b.CreatedAt = utils.NowUnixSeconds()
	}
	b.UpdatedAt = b.CreatedAt
	return nil
}

func (b *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	b.UpdatedAt = utils.NowUnixSeconds()
	return nil
}

// CreatedAtRFC3339 renders the creation time for API responses, empty when unset.
func (b BaseModel) CreatedAtRFC3339() string {
	return utils.FormatRFC3339(b.CreatedAt)
}
