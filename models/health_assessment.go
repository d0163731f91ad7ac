package models

import (
	"github.com/billysm23/FitKitchen-BackendTST/utils"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// HealthHistory is free-form background captured at assessment time.
// Allergies hold allergen-type tags matched against menu ingredients.
type HealthHistory struct {
	Allergies  []string `json:"allergies"`
	Conditions []string `json:"conditions"`
	Notes      string   `json:"notes"`
}

// Metrics are derived wholesale from the assessment scalars. A partial
// update never happens: every recompute replaces the full record.
type Metrics struct {
	BMI            float64              `json:"bmi"`
	BMICategory    string               `json:"bmi_category"`
	BMR            int                  `json:"bmr"`
	TDEE           int                  `json:"tdee"`
	FinalCal       int                  `json:"final_cal"`
	Macronutrients utils.Macronutrients `json:"macronutrients"`
}

// HealthAssessment is the one active health profile per user; a new
// submission replaces the previous one (upsert on user_id).
type HealthAssessment struct {
	gorm.Model
	UserID        uint                               `gorm:"uniqueIndex;not null" json:"user_id"`
	Height        float64                            `gorm:"not null" json:"height"`
	Weight        float64                            `gorm:"not null" json:"weight"`
	Age           int                                `gorm:"not null" json:"age"`
	Gender        string                             `gorm:"not null" json:"gender"`
	ActivityLevel string                             `gorm:"not null" json:"activity_level"`
	HealthGoal    string                             `gorm:"not null" json:"health_goal"`
	MacroRatio    string                             `json:"macro_ratio"`
	TargetWeight  float64                            `json:"target_weight"`
	SpecificGoals string                             `json:"specific_goals"`
	HealthHistory datatypes.JSONType[HealthHistory] `json:"health_history"`
	Metrics       datatypes.JSONType[Metrics]       `json:"metrics"`
}

// Allergies returns the declared allergen tags, never nil.
func (a *HealthAssessment) Allergies() []string {
	allergies := a.HealthHistory.Data().Allergies
	if allergies == nil {
		return []string{}
	}
	return allergies
}
