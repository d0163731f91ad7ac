package services

import (
	"math"
	"net/http"
	"sort"

	"github.com/billysm23/FitKitchen-BackendTST/config"
	"github.com/billysm23/FitKitchen-BackendTST/models"
	"github.com/billysm23/FitKitchen-BackendTST/utils"
)

// MealRatio is the share of the daily macro targets one menu item is
// scored against. It is intentionally fixed at 0.3 for every plan type
// even though plan validation uses the plan's own calorie ratio;
// ranking order depends on this, so do not unify the two.
const MealRatio = 0.3

// scoreWeights reflect the relative importance of hitting each macro.
var scoreWeights = struct {
	Protein float64
	Carbs   float64
	Fats    float64
}{Protein: 1.2, Carbs: 0.7, Fats: 1.0}

// NutritionScore is the weighted distance between actual macros and a
// target. Lower is better; zero is an exact match.
func NutritionScore(protein, carbs, fats, targetProtein, targetCarbs, targetFats float64) float64 {
	return math.Abs(protein-targetProtein)*scoreWeights.Protein +
		math.Abs(carbs-targetCarbs)*scoreWeights.Carbs +
		math.Abs(fats-targetFats)*scoreWeights.Fats
}

// MenuScore ranks one menu item against the per-meal share of the
// daily macro targets.
func MenuScore(menu models.Menu, macros utils.Macronutrients) float64 {
	return NutritionScore(
		menu.ProteinPerServing, menu.CarbsPerServing, menu.FatsPerServing,
		float64(macros.Protein)*MealRatio,
		float64(macros.Carbs)*MealRatio,
		float64(macros.Fats)*MealRatio,
	)
}

type ScoredMenu struct {
	models.Menu
	Score float64 `json:"score"`
}

// FilterAndScoreMenus drops allergen-unsafe items, scores the rest and
// sorts ascending. The sort is stable so equal scores keep the
// caller's original ordering.
func FilterAndScoreMenus(menus []models.Menu, allergies []string, macros utils.Macronutrients) []ScoredMenu {
	scored := make([]ScoredMenu, 0, len(menus))
	for _, menu := range menus {
		if !menu.IsSafeFor(allergies) {
			continue
		}
		scored = append(scored, ScoredMenu{Menu: menu, Score: MenuScore(menu, macros)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score < scored[j].Score
	})
	return scored
}

type RecommendationPlanDetails struct {
	MinMenus         int     `json:"minMenus"`
	MaxMenus         int     `json:"maxMenus"`
	MaxTotalCalories float64 `json:"maxTotalCalories"`
	CalorieRatio     float64 `json:"calorieRatio"`
}

type RecommendationTarget struct {
	DailyCalories int                  `json:"dailyCalories"`
	PlanCalories  float64              `json:"planCalories"`
	Macros        utils.Macronutrients `json:"macros"`
}

type RecommendationFilters struct {
	ExcludedAllergens []string `json:"excludedAllergens"`
}

type RecommendationResult struct {
	PlanType        string                    `json:"plan_type"`
	Recommendations []ScoredMenu              `json:"recommendations"`
	PlanDetails     RecommendationPlanDetails `json:"planDetails"`
	TargetNutrition RecommendationTarget      `json:"targetNutrition"`
	Filters         RecommendationFilters     `json:"filters"`
}

// singleMealCalorieCap is the fixed recommendation calorie ceiling for
// single plans; half/full day plans derive theirs from final_cal.
const singleMealCalorieCap = 600

// GetRecommendedMenus ranks the active catalog for the caller's
// resolved nutrition targets and plan type.
func GetRecommendedMenus(userID uint, planType string) (*RecommendationResult, error) {
	planConfig, ok := models.PlanConfigs[planType]
	if !ok {
		return nil, utils.NewAppError(
			"Invalid plan type. Must be one of: single, half_day, full_day",
			http.StatusBadRequest,
			utils.ErrInvalidInput,
		)
	}

	assessment, err := GetAssessment(userID)
	if err != nil {
		return nil, err
	}
	metrics := assessment.Metrics.Data()

	var menus []models.Menu
	err = config.DB.
		Where("is_active = ?", true).
		Preload("Category").
		Preload("Ingredients.Ingredient").
		Find(&menus).Error
	if err != nil {
		return nil, storageError("fetching menus", err)
	}

	allergies := assessment.Allergies()
	scored := FilterAndScoreMenus(menus, allergies, metrics.Macronutrients)

	maxTotalCalories := float64(metrics.FinalCal) * planConfig.CalorieRatio
	if planType == models.PlanTypeSingle {
		maxTotalCalories = singleMealCalorieCap
	}

	return &RecommendationResult{
		PlanType:        planType,
		Recommendations: scored,
		PlanDetails: RecommendationPlanDetails{
			MinMenus:         planConfig.MinMenus,
			MaxMenus:         planConfig.MaxMenus,
			MaxTotalCalories: maxTotalCalories,
			CalorieRatio:     planConfig.CalorieRatio,
		},
		TargetNutrition: RecommendationTarget{
			DailyCalories: metrics.FinalCal,
			PlanCalories:  maxTotalCalories,
			Macros: utils.Macronutrients{
				Protein: int(math.Round(float64(metrics.Macronutrients.Protein) * planConfig.CalorieRatio)),
				Carbs:   int(math.Round(float64(metrics.Macronutrients.Carbs) * planConfig.CalorieRatio)),
				Fats:    int(math.Round(float64(metrics.Macronutrients.Fats) * planConfig.CalorieRatio)),
			},
		},
		Filters: RecommendationFilters{ExcludedAllergens: allergies},
	}, nil
}
