package services

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/billysm23/FitKitchen-BackendTST/config"
	"github.com/billysm23/FitKitchen-BackendTST/models"
	"github.com/billysm23/FitKitchen-BackendTST/utils"

	"gorm.io/gorm"
)

const (
	// ScoreThreshold is the max acceptable nutrition score for
	// multi-menu plans.
	ScoreThreshold = 50.0
	// CalorieTolerance is the allowed relative deviation from the
	// plan's calorie target.
	CalorieTolerance = 0.20
)

type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

type ValidationDetails struct {
	NutritionScore float64 `json:"nutritionScore"`
	ScoreThreshold float64 `json:"scoreThreshold"`
	Message        string  `json:"message"`
}

type ValidationPlanDetails struct {
	PlanType     string  `json:"plan_type"`
	MinMenus     int     `json:"minMenus"`
	MaxMenus     int     `json:"maxMenus"`
	CalorieRatio float64 `json:"calorieRatio"`
}

// ValidationResult is the validator's value output. A selection that
// misses the calorie or balance targets is reported here with
// IsValid=false; it is a business outcome, not an error.
type ValidationResult struct {
	IsValid           bool                  `json:"isValid"`
	ValidationDetails ValidationDetails     `json:"validationDetails"`
	TotalNutrition    NutritionTotals       `json:"totalNutrition"`
	TargetNutrition   NutritionTotals       `json:"targetNutrition"`
	PlanDetails       ValidationPlanDetails `json:"planDetails"`
	Recommendations   string                `json:"recommendations"`
}

// ValidateSelection checks a loaded menu selection against the
// caller's health profile. Steps run in order and short-circuit:
// structural bounds, allergen safety (both hard failures), then
// calorie tolerance and nutrition score (soft, reported as data).
func ValidateSelection(menus []models.Menu, planType string, assessment *models.HealthAssessment) (*ValidationResult, error) {
	planConfig, ok := models.PlanConfigs[planType]
	if !ok {
		return nil, utils.NewAppError(
			"Invalid plan type. Must be one of: single, half_day, full_day",
			http.StatusBadRequest,
			utils.ErrInvalidInput,
		)
	}

	if len(menus) == 0 {
		return nil, utils.NewAppError("Valid menu selection is required", http.StatusBadRequest, utils.ErrInvalidInput)
	}
	if len(menus) < planConfig.MinMenus {
		return nil, utils.NewAppError(
			fmt.Sprintf("%s plan requires at least %d menu selection(s)", planType, planConfig.MinMenus),
			http.StatusBadRequest,
			utils.ErrValidationError,
		)
	}
	if len(menus) > planConfig.MaxMenus {
		message := fmt.Sprintf("%s plan allows at most %d menu selection(s)", planType, planConfig.MaxMenus)
		if planType == models.PlanTypeSingle {
			message = "Single meal plan can only have one menu selection"
		}
		return nil, utils.NewAppError(message, http.StatusBadRequest, utils.ErrValidationError)
	}

	allergies := assessment.Allergies()
	for _, menu := range menus {
		if !menu.IsSafeFor(allergies) {
			return nil, utils.NewAppError(
				"Selected menu contains allergens that match your profile",
				http.StatusBadRequest,
				utils.ErrValidationError,
			)
		}
	}

	var total NutritionTotals
	for _, menu := range menus {
		total.Calories += menu.CaloriesPerServing
		total.Protein += menu.ProteinPerServing
		total.Carbs += menu.CarbsPerServing
		total.Fats += menu.FatsPerServing
	}

	metrics := assessment.Metrics.Data()
	target := NutritionTotals{
		Calories: float64(metrics.FinalCal) * planConfig.CalorieRatio,
		Protein:  float64(metrics.Macronutrients.Protein) * planConfig.CalorieRatio,
		Carbs:    float64(metrics.Macronutrients.Carbs) * planConfig.CalorieRatio,
		Fats:     float64(metrics.Macronutrients.Fats) * planConfig.CalorieRatio,
	}

	score := NutritionScore(
		total.Protein, total.Carbs, total.Fats,
		target.Protein, target.Carbs, target.Fats,
	)

	isValid := true
	message := ""

	// Single plans skip both tolerance checks: one meal cannot be
	// expected to balance a day.
	if planType != models.PlanTypeSingle {
		deviation := math.Abs(total.Calories-target.Calories) / target.Calories
		if deviation > CalorieTolerance {
			isValid = false
			message = fmt.Sprintf(
				"Total calories (%g) are too far from target (%d)",
				total.Calories, int(math.Round(target.Calories)),
			)
		}

		if score > ScoreThreshold {
			isValid = false
			if message == "" {
				message = "Nutritional balance needs improvement"
			}
		}
	}

	recommendations := "Selected meals are suitable for your nutritional needs"
	if !isValid {
		recommendations = "Improvement needed: " + message
	}

	return &ValidationResult{
		IsValid: isValid,
		ValidationDetails: ValidationDetails{
			NutritionScore: score,
			ScoreThreshold: ScoreThreshold,
			Message:        message,
		},
		TotalNutrition:  total,
		TargetNutrition: target,
		PlanDetails: ValidationPlanDetails{
			PlanType:     planType,
			MinMenus:     planConfig.MinMenus,
			MaxMenus:     planConfig.MaxMenus,
			CalorieRatio: planConfig.CalorieRatio,
		},
		Recommendations: recommendations,
	}, nil
}

// loadSelection resolves menu ids to rows, preserving request order
// and duplicates so the structural check sees the true selection size.
func loadSelection(menuIDs []uint) ([]models.Menu, error) {
	if len(menuIDs) == 0 {
		return nil, utils.NewAppError("Valid menu selection is required", http.StatusBadRequest, utils.ErrInvalidInput)
	}

	var rows []models.Menu
	err := config.DB.
		Where("id IN ?", menuIDs).
		Preload("Ingredients.Ingredient").
		Find(&rows).Error
	if err != nil {
		return nil, storageError("fetching selected menus", err)
	}

	byID := make(map[uint]models.Menu, len(rows))
	for _, m := range rows {
		byID[m.ID] = m
	}

	menus := make([]models.Menu, 0, len(menuIDs))
	for _, id := range menuIDs {
		menu, ok := byID[id]
		if !ok {
			return nil, utils.NewAppError(
				fmt.Sprintf("Menu %d not found", id),
				http.StatusNotFound,
				utils.ErrResourceNotFound,
			)
		}
		menus = append(menus, menu)
	}
	return menus, nil
}

// ValidateSelectionByIDs is the storage-backed entry point used by the
// validate endpoint and by plan creation.
func ValidateSelectionByIDs(userID uint, menuIDs []uint, planType string) (*ValidationResult, error) {
	assessment, err := GetAssessment(userID)
	if err != nil {
		return nil, err
	}
	menus, err := loadSelection(menuIDs)
	if err != nil {
		return nil, err
	}
	return ValidateSelection(menus, planType, assessment)
}

// CreatePlan validates the selection, then persists the plan header
// and its menu rows in one transaction; readers never observe a plan
// without menus.
func CreatePlan(userID uint, planType string, menuIDs []uint) (*models.MealPlan, *ValidationResult, error) {
	validation, err := ValidateSelectionByIDs(userID, menuIDs, planType)
	if err != nil {
		return nil, nil, err
	}
	if !validation.IsValid {
		return nil, nil, &utils.AppError{
			Message: "Invalid menu selection",
			Status:  http.StatusBadRequest,
			Code:    utils.ErrInvalidInput,
			Data:    validation,
		}
	}

	planConfig := models.PlanConfigs[planType]
	now := time.Now()
	plan := models.MealPlan{
		UserID:        userID,
		PlanType:      planType,
		Status:        models.PlanStatusActive,
		StartDate:     now,
		EndDate:       now.AddDate(0, 0, planConfig.DurationDays),
		TotalCalories: validation.TotalNutrition.Calories,
		TotalProtein:  validation.TotalNutrition.Protein,
		TotalCarbs:    validation.TotalNutrition.Carbs,
		TotalFats:     validation.TotalNutrition.Fats,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&plan).Error; err != nil {
			return err
		}
		for _, menuID := range menuIDs {
			link := models.MealPlanMenu{MealPlanID: plan.ID, MenuID: menuID}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, storageError("creating meal plan", err)
	}

	var created models.MealPlan
	err = config.DB.
		Preload("Menus.Menu.Category").
		First(&created, plan.ID).Error
	if err != nil {
		return nil, nil, storageError("reloading meal plan", err)
	}
	return &created, validation, nil
}

func GetActivePlans(userID uint) ([]models.MealPlan, error) {
	var plans []models.MealPlan
	err := config.DB.
		Where("user_id = ? AND status = ?", userID, models.PlanStatusActive).
		Preload("Menus.Menu.Category").
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, storageError("fetching active plans", err)
	}
	return plans, nil
}

// UpdatePlanStatus flips a plan's status. Only the owning user may
// transition their plan; plans are never deleted.
func UpdatePlanStatus(planID, userID uint, status string) (*models.MealPlan, error) {
	if !models.IsValidPlanStatus(status) {
		return nil, utils.NewAppError("Invalid status", http.StatusBadRequest, utils.ErrInvalidInput)
	}

	result := config.DB.Model(&models.MealPlan{}).
		Where("id = ? AND user_id = ?", planID, userID).
		Update("status", status)
	if result.Error != nil {
		return nil, storageError("updating plan status", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, utils.NewAppError("Meal plan not found", http.StatusNotFound, utils.ErrResourceNotFound)
	}

	var plan models.MealPlan
	err := config.DB.
		Preload("Menus.Menu.Category").
		First(&plan, planID).Error
	if err != nil {
		return nil, storageError("reloading meal plan", err)
	}
	return &plan, nil
}

type PlanHistoryOptions struct {
	Status string
	Limit  int
	Offset int
}

type PlanNutritionSummary struct {
	Planned NutritionTotals `json:"planned"`
	Actual  NutritionTotals `json:"actual"`
}

type PlanHistoryEntry struct {
	ID               uint                 `json:"id"`
	PlanType         string               `json:"plan_type"`
	Status           string               `json:"status"`
	StartDate        time.Time            `json:"start_date"`
	EndDate          time.Time            `json:"end_date"`
	NutritionSummary PlanNutritionSummary `json:"nutrition_summary"`
	Menus            []models.Menu        `json:"menus"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// ValidateHistoryOptions applies defaults and bounds-checks pagination.
func ValidateHistoryOptions(opts *PlanHistoryOptions) error {
	if opts.Limit == 0 {
		opts.Limit = 10
	}
	if opts.Limit < 1 || opts.Limit > 100 {
		return utils.NewAppError("Limit must be between 1 and 100", http.StatusBadRequest, utils.ErrInvalidInput)
	}
	if opts.Offset < 0 {
		return utils.NewAppError("Offset cannot be negative", http.StatusBadRequest, utils.ErrInvalidInput)
	}
	if opts.Status != "" && !models.IsValidPlanStatus(opts.Status) {
		return utils.NewAppError("Invalid status filter", http.StatusBadRequest, utils.ErrInvalidInput)
	}
	return nil
}

// GetPlanHistory pages through the caller's plans newest-first, each
// row comparing the creation-time snapshot against the live sum over
// the associated menus.
func GetPlanHistory(userID uint, opts PlanHistoryOptions) ([]PlanHistoryEntry, error) {
	if err := ValidateHistoryOptions(&opts); err != nil {
		return nil, err
	}

	q := config.DB.
		Where("user_id = ?", userID).
		Preload("Menus.Menu.Category").
		Order("created_at DESC").
		Limit(opts.Limit).
		Offset(opts.Offset)
	if opts.Status != "" {
		q = q.Where("status = ?", opts.Status)
	}

	var plans []models.MealPlan
	if err := q.Find(&plans).Error; err != nil {
		return nil, storageError("fetching plan history", err)
	}

	history := make([]PlanHistoryEntry, 0, len(plans))
	for _, plan := range plans {
		var actual NutritionTotals
		menus := make([]models.Menu, 0, len(plan.Menus))
		for _, link := range plan.Menus {
			actual.Calories += link.Menu.CaloriesPerServing
			actual.Protein += link.Menu.ProteinPerServing
			actual.Carbs += link.Menu.CarbsPerServing
			actual.Fats += link.Menu.FatsPerServing
			menus = append(menus, link.Menu)
		}

		history = append(history, PlanHistoryEntry{
			ID:        plan.ID,
			PlanType:  plan.PlanType,
			Status:    plan.Status,
			StartDate: plan.StartDate,
			EndDate:   plan.EndDate,
			NutritionSummary: PlanNutritionSummary{
				Planned: NutritionTotals{
					Calories: plan.TotalCalories,
					Protein:  plan.TotalProtein,
					Carbs:    plan.TotalCarbs,
					Fats:     plan.TotalFats,
				},
				Actual: actual,
			},
			Menus:     menus,
			CreatedAt: plan.CreatedAt,
			UpdatedAt: plan.UpdatedAt,
		})
	}
	return history, nil
}
