package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PlanTypeSingle  = "single"
	PlanTypeHalfDay = "half_day"
	PlanTypeFullDay = "full_day"

	PlanStatusActive    = "active"
	PlanStatusCompleted = "completed"
	PlanStatusCancelled = "cancelled"
)

// PlanConfig is the fixed shape of one plan type.
type PlanConfig struct {
	Description  string
	MinMenus     int
	MaxMenus     int
	CalorieRatio float64
	// DurationDays is 1 for every plan type for now.
	DurationDays int
}

// PlanConfigs is built once at startup and treated as read-only.
var PlanConfigs = map[string]PlanConfig{
	PlanTypeSingle: {
		Description:  "Single meal plan",
		MinMenus:     1,
		MaxMenus:     1,
		CalorieRatio: 0.3,
		DurationDays: 1,
	},
	PlanTypeHalfDay: {
		Description:  "Half-day meal plan",
		MinMenus:     1,
		MaxMenus:     4,
		CalorieRatio: 0.5,
		DurationDays: 1,
	},
	PlanTypeFullDay: {
		Description:  "Full-day meal plan",
		MinMenus:     2,
		MaxMenus:     8,
		CalorieRatio: 0.9,
		DurationDays: 1,
	},
}

func IsValidPlanStatus(status string) bool {
	switch status {
	case PlanStatusActive, PlanStatusCompleted, PlanStatusCancelled:
		return true
	}
	return false
}

// MealPlan is never deleted; its lifecycle is tracked through status.
// Totals are a snapshot of the selection's nutrition at creation time.
type MealPlan struct {
	gorm.Model
	UserID        uint           `gorm:"index;not null" json:"user_id"`
	PlanType      string         `gorm:"not null" json:"plan_type"`
	Status        string         `gorm:"not null;default:active" json:"status"`
	StartDate     time.Time      `json:"start_date"`
	EndDate       time.Time      `json:"end_date"`
	TotalCalories float64        `json:"total_calories"`
	TotalProtein  float64        `json:"total_protein"`
	TotalCarbs    float64        `json:"total_carbs"`
	TotalFats     float64        `json:"total_fats"`
	Menus         []MealPlanMenu `json:"menus"`
}

type MealPlanMenu struct {
	gorm.Model
	MealPlanID uint `gorm:"index;not null" json:"meal_plan_id"`
	MenuID     uint `gorm:"not null" json:"menu_id"`
	Menu       Menu `gorm:"foreignKey:MenuID" json:"menu"`
}
