package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// TravelPlan is a saved, normalized itinerary owned by one account.
type TravelPlan struct {
	BaseModel
	AccountID      uuid.UUID `gorm:"type:uuid;index"`
	Origin         string
	Destination    string `gorm:"index"`
	StartDate      string `gorm:"size:10"` // YYYY-MM-DD
	EndDate        string `gorm:"size:10"`
	Budget         *float64
	PartySize      int `gorm:"default:1"`
	EstimatedTotal float64
	Preferences    datatypes.JSON `gorm:"type:jsonb"`

	Days     []PlanDay `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
	Expenses []Expense `gorm:"foreignKey:PlanID;constraint:OnDelete:CASCADE"`
}

type PlanDay struct {
	BaseModel
	PlanID    uuid.UUID `gorm:"type:uuid;index"`
	DayIndex  int       `gorm:"index"`
	DayBudget float64
	Segments  datatypes.JSON `gorm:"type:jsonb"`
}
