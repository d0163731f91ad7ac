package models

import "gorm.io/gorm"

type MenuCategory struct {
	gorm.Model
	Name        string `gorm:"uniqueIndex;not null" json:"name"`
	Description string `json:"description"`
}

type Ingredient struct {
	gorm.Model
	Name            string  `gorm:"not null" json:"name"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatsPer100g     float64 `json:"fats_per_100g"`
	IsAllergen      bool    `json:"is_allergen"`
	AllergenType    string  `json:"allergen_type"`
	Unit            string  `json:"unit"`
}

// Menu is an immutable nutritional record per serving.
type Menu struct {
	gorm.Model
	Name               string           `gorm:"not null" json:"name"`
	Description        string           `json:"description"`
	ImageURL           string           `json:"image_url"`
	CaloriesPerServing float64          `json:"calories_per_serving"`
	ProteinPerServing  float64          `json:"protein_per_serving"`
	CarbsPerServing    float64          `json:"carbs_per_serving"`
	FatsPerServing     float64          `json:"fats_per_serving"`
	ServingSize        string           `json:"serving_size"`
	PreparationTime    int              `json:"preparation_time"`
	IsActive           bool             `gorm:"default:true" json:"is_active"`
	CategoryID         uint             `json:"category_id"`
	Category           MenuCategory     `gorm:"foreignKey:CategoryID" json:"category"`
	Ingredients        []MenuIngredient `json:"ingredients"`
}

type MenuIngredient struct {
	gorm.Model
	MenuID       uint       `gorm:"index;not null" json:"menu_id"`
	IngredientID uint       `gorm:"not null" json:"ingredient_id"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient"`
	Amount       float64    `json:"amount"`
	Unit         string     `json:"unit"`
}

// AllergenTypes lists the allergen tags present in this menu's ingredients.
func (m *Menu) AllergenTypes() []string {
	var types []string
	for _, mi := range m.Ingredients {
		if mi.Ingredient.IsAllergen {
			types = append(types, mi.Ingredient.AllergenType)
		}
	}
	return types
}

// IsSafeFor reports whether none of the menu's allergen types appear in
// the user's declared allergy list.
func (m *Menu) IsSafeFor(allergies []string) bool {
	if len(allergies) == 0 {
		return true
	}
	declared := make(map[string]bool, len(allergies))
	for _, a := range allergies {
		declared[a] = true
	}
	for _, t := range m.AllergenTypes() {
		if declared[t] {
			return false
		}
	}
	return true
}
