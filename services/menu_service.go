package services

import (
	"errors"
	"net/http"
	"strings"

	"github.com/billysm23/FitKitchen-BackendTST/config"
	"github.com/billysm23/FitKitchen-BackendTST/models"
	"github.com/billysm23/FitKitchen-BackendTST/utils"

	"gorm.io/gorm"
)

type MenuFilters struct {
	MinCalories *float64
	MaxCalories *float64
	MinProtein  *float64
	Page        int
	Limit       int
}

func GetMenusByCategory(category string, filters MenuFilters) ([]models.Menu, error) {
	if category == "" {
		return nil, utils.NewAppError("Category is required", http.StatusBadRequest, utils.ErrMissingField)
	}
	if filters.MinCalories != nil && *filters.MinCalories < 0 {
		return nil, utils.NewAppError("Minimum calories must be positive", http.StatusBadRequest, utils.ErrInvalidInput)
	}
	if filters.MaxCalories != nil && filters.MinCalories != nil && *filters.MaxCalories < *filters.MinCalories {
		return nil, utils.NewAppError(
			"Maximum calories must be greater than minimum calories",
			http.StatusBadRequest,
			utils.ErrInvalidInput,
		)
	}

	q := config.DB.
		Joins("JOIN menu_categories ON menu_categories.id = menus.category_id").
		Where("menus.is_active = ? AND menu_categories.name = ?", true, category).
		Preload("Category").
		Preload("Ingredients.Ingredient")

	if filters.MinCalories != nil {
		q = q.Where("menus.calories_per_serving >= ?", *filters.MinCalories)
	}
	if filters.MaxCalories != nil {
		q = q.Where("menus.calories_per_serving <= ?", *filters.MaxCalories)
	}
	if filters.MinProtein != nil {
		q = q.Where("menus.protein_per_serving >= ?", *filters.MinProtein)
	}
	if filters.Page > 0 && filters.Limit > 0 {
		q = q.Offset((filters.Page - 1) * filters.Limit).Limit(filters.Limit)
	}

	var menus []models.Menu
	if err := q.Find(&menus).Error; err != nil {
		return nil, storageError("fetching menus by category", err)
	}
	return menus, nil
}

func SearchMenus(term string, categoryID *uint, minCalories, maxCalories *float64) ([]models.Menu, error) {
	q := config.DB.
		Where("is_active = ?", true).
		Preload("Category").
		Preload("Ingredients.Ingredient")

	if term = strings.TrimSpace(term); term != "" {
		pattern := "%" + term + "%"
		q = q.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	if minCalories != nil {
		q = q.Where("calories_per_serving >= ?", *minCalories)
	}
	if maxCalories != nil {
		q = q.Where("calories_per_serving <= ?", *maxCalories)
	}

	var menus []models.Menu
	if err := q.Find(&menus).Error; err != nil {
		return nil, storageError("searching menus", err)
	}
	return menus, nil
}

// MenuAllergen summarizes one allergen-flagged ingredient of a menu.
type MenuAllergen struct {
	IngredientID uint    `json:"ingredientId"`
	Name         string  `json:"name"`
	AllergenType string  `json:"allergenType"`
	Amount       float64 `json:"amount"`
	Unit         string  `json:"unit"`
}

func GetMenuDetails(menuID uint) (*models.Menu, []MenuAllergen, error) {
	var menu models.Menu
	err := config.DB.
		Preload("Category").
		Preload("Ingredients.Ingredient").
		First(&menu, menuID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, utils.NewAppError("Menu not found", http.StatusNotFound, utils.ErrResourceNotFound)
	}
	if err != nil {
		return nil, nil, storageError("fetching menu details", err)
	}

	allergens := make([]MenuAllergen, 0)
	for _, mi := range menu.Ingredients {
		if mi.Ingredient.IsAllergen {
			allergens = append(allergens, MenuAllergen{
				IngredientID: mi.IngredientID,
				Name:         mi.Ingredient.Name,
				AllergenType: mi.Ingredient.AllergenType,
				Amount:       mi.Amount,
				Unit:         mi.Unit,
			})
		}
	}
	return &menu, allergens, nil
}

// SetMenuImage records the uploaded image URL on the menu row.
func SetMenuImage(menuID uint, url string) error {
	result := config.DB.Model(&models.Menu{}).
		Where("id = ?", menuID).
		Update("image_url", url)
	if result.Error != nil {
		return storageError("updating menu image", result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.NewAppError("Menu not found", http.StatusNotFound, utils.ErrResourceNotFound)
	}
	return nil
}
