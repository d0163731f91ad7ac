package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/billysm23/FitKitchen-BackendTST/models"
	"github.com/billysm23/FitKitchen-BackendTST/utils"

	"gorm.io/datatypes"
)

func newAssessment(finalCal int, macros utils.Macronutrients, allergies []string) *models.HealthAssessment {
	return &models.HealthAssessment{
		Metrics: datatypes.NewJSONType(models.Metrics{
			FinalCal:       finalCal,
			Macronutrients: macros,
		}),
		HealthHistory: datatypes.NewJSONType(models.HealthHistory{Allergies: allergies}),
	}
}

func appErrCode(t *testing.T, err error) utils.ErrorCode {
	t.Helper()
	var appErr *utils.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *utils.AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func TestValidateSelectionStructuralBounds(t *testing.T) {
	assessment := newAssessment(2000, utils.Macronutrients{Protein: 100, Carbs: 200, Fats: 60}, nil)
	menu := newMenu("meal", 500, 30, 60, 18)

	// single must be exactly one menu
	_, err := ValidateSelection([]models.Menu{menu, menu}, models.PlanTypeSingle, assessment)
	if err == nil {
		t.Fatal("expected error for two menus on a single plan")
	}
	if code := appErrCode(t, err); code != utils.ErrValidationError {
		t.Errorf("got code %s, want VALIDATION_ERROR", code)
	}
	if !strings.Contains(err.Error(), "one menu selection") {
		t.Errorf("unexpected message: %v", err)
	}

	// full_day needs at least two
	_, err = ValidateSelection([]models.Menu{menu}, models.PlanTypeFullDay, assessment)
	if err == nil {
		t.Fatal("expected error for one menu on a full_day plan")
	}

	// half_day allows at most four
	five := []models.Menu{menu, menu, menu, menu, menu}
	_, err = ValidateSelection(five, models.PlanTypeHalfDay, assessment)
	if err == nil {
		t.Fatal("expected error for five menus on a half_day plan")
	}

	// unknown plan type
	_, err = ValidateSelection([]models.Menu{menu}, "weekly", assessment)
	if err == nil {
		t.Fatal("expected error for unknown plan type")
	}
	if code := appErrCode(t, err); code != utils.ErrInvalidInput {
		t.Errorf("got code %s, want INVALID_INPUT", code)
	}
}

func TestValidateSelectionAllergenViolationFailsWholeSelection(t *testing.T) {
	assessment := newAssessment(2000, utils.Macronutrients{Protein: 100, Carbs: 200, Fats: 60}, []string{"shellfish"})
	menus := []models.Menu{
		newMenu("safe one", 500, 25, 50, 15),
		newMenu("shrimp bowl", 450, 25, 50, 15, "shellfish"),
		newMenu("safe two", 480, 25, 50, 15),
	}

	_, err := ValidateSelection(menus, models.PlanTypeHalfDay, assessment)
	if err == nil {
		t.Fatal("expected allergen violation to fail the whole selection")
	}
	if code := appErrCode(t, err); code != utils.ErrValidationError {
		t.Errorf("got code %s, want VALIDATION_ERROR", code)
	}
}

func TestValidateSelectionSinglePlanSkipsToleranceChecks(t *testing.T) {
	assessment := newAssessment(2000, utils.Macronutrients{Protein: 100, Carbs: 200, Fats: 60}, nil)
	// Wildly off target: would fail both checks on any other plan type.
	menus := []models.Menu{newMenu("tiny snack", 50, 1, 5, 1)}

	result, err := ValidateSelection(menus, models.PlanTypeSingle, assessment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValid {
		t.Errorf("single plan should never fail deviation/score checks: %+v", result.ValidationDetails)
	}
	if result.ValidationDetails.Message != "" {
		t.Errorf("unexpected message: %q", result.ValidationDetails.Message)
	}
}

func TestValidateSelectionCalorieDeviation(t *testing.T) {
	// full_day target = 2000 * 0.9 = 1800 kcal; 1000 kcal is ~44% off.
	assessment := newAssessment(2000, utils.Macronutrients{Protein: 100, Carbs: 200, Fats: 60}, nil)
	menus := []models.Menu{
		newMenu("light one", 500, 45, 90, 27),
		newMenu("light two", 500, 45, 90, 27),
	}

	result, err := ValidateSelection(menus, models.PlanTypeFullDay, assessment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid {
		t.Fatal("expected isValid=false for >20%% calorie deviation")
	}
	msg := result.ValidationDetails.Message
	if !strings.Contains(msg, "1000") || !strings.Contains(msg, "1800") {
		t.Errorf("message should reference actual and target calories, got %q", msg)
	}
	if !strings.HasPrefix(result.Recommendations, "Improvement needed:") {
		t.Errorf("unexpected recommendations text: %q", result.Recommendations)
	}
}

func TestValidateSelectionNutritionScoreThreshold(t *testing.T) {
	// Calories on target (1000 = 2000*0.5) but protein is 50g short of
	// the 50g target: score = 50*1.2 = 60 > 50.
	assessment := newAssessment(2000, utils.Macronutrients{Protein: 100, Carbs: 200, Fats: 60}, nil)
	menus := []models.Menu{
		newMenu("carb heavy", 500, 0, 50, 15),
		newMenu("carb heavy too", 500, 0, 50, 15),
	}

	result, err := ValidateSelection(menus, models.PlanTypeHalfDay, assessment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.IsValid {
		t.Fatalf("expected isValid=false for score %v above threshold", result.ValidationDetails.NutritionScore)
	}
	if result.ValidationDetails.Message != "Nutritional balance needs improvement" {
		t.Errorf("unexpected message: %q", result.ValidationDetails.Message)
	}
	if result.ValidationDetails.ScoreThreshold != ScoreThreshold {
		t.Errorf("threshold = %v, want %v", result.ValidationDetails.ScoreThreshold, ScoreThreshold)
	}
}

func TestValidateSelectionBalancedHalfDayPasses(t *testing.T) {
	// Exactly on half-day targets: 1000 kcal, 50g P, 100g C, 30g F.
	assessment := newAssessment(2000, utils.Macronutrients{Protein: 100, Carbs: 200, Fats: 60}, nil)
	menus := []models.Menu{
		newMenu("balanced one", 500, 25, 50, 15),
		newMenu("balanced two", 500, 25, 50, 15),
	}

	result, err := ValidateSelection(menus, models.PlanTypeHalfDay, assessment)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsValid {
		t.Fatalf("expected valid selection, got %+v", result.ValidationDetails)
	}
	if result.ValidationDetails.NutritionScore != 0 {
		t.Errorf("score = %v, want 0", result.ValidationDetails.NutritionScore)
	}
	if result.Recommendations != "Selected meals are suitable for your nutritional needs" {
		t.Errorf("unexpected recommendations: %q", result.Recommendations)
	}
	if result.TargetNutrition.Calories != 1000 {
		t.Errorf("target calories = %v, want 1000", result.TargetNutrition.Calories)
	}
}

func TestValidateHistoryOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    PlanHistoryOptions
		wantErr bool
	}{
		{name: "defaults", opts: PlanHistoryOptions{}},
		{name: "valid filter", opts: PlanHistoryOptions{Status: "completed", Limit: 20, Offset: 40}},
		{name: "limit too large", opts: PlanHistoryOptions{Limit: 101}, wantErr: true},
		{name: "negative limit", opts: PlanHistoryOptions{Limit: -1}, wantErr: true},
		{name: "negative offset", opts: PlanHistoryOptions{Offset: -1}, wantErr: true},
		{name: "bad status", opts: PlanHistoryOptions{Status: "archived"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateHistoryOptions(&tt.opts)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if code := appErrCode(t, err); code != utils.ErrInvalidInput {
					t.Errorf("got code %s, want INVALID_INPUT", code)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.opts.Limit < 1 {
				t.Errorf("limit not defaulted: %d", tt.opts.Limit)
			}
		})
	}
}
