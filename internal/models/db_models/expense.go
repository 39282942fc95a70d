package db_models

import "github.com/google/uuid"

type Expense struct {
	BaseModel
	PlanID      uuid.UUID `gorm:"type:uuid;index"`
	AccountID   uuid.UUID `gorm:"type:uuid;index"`
	Date        string    `gorm:"size:10"`
	Amount      float64
	Category    string `gorm:"index"`
	Note        string
	InputMethod string // "manual" | "voice"
}
