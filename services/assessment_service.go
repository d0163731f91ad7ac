package services

import (
	"errors"
	"net/http"

	"github.com/billysm23/FitKitchen-BackendTST/config"
	"github.com/billysm23/FitKitchen-BackendTST/models"
	"github.com/billysm23/FitKitchen-BackendTST/utils"

	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var validate = validator.New()

type AssessmentInput struct {
	Height        float64              `json:"height" validate:"required,gt=0"`
	Weight        float64              `json:"weight" validate:"required,gt=0"`
	Age           int                  `json:"age" validate:"required,gt=0"`
	Gender        string               `json:"gender" validate:"required,oneof=male female"`
	ActivityLevel string               `json:"activity_level" validate:"required,oneof=sedentary light moderate active very_active"`
	HealthGoal    string               `json:"health_goal" validate:"required,oneof=weight_loss muscle_gain maintenance"`
	MacroRatio    string               `json:"macro_ratio" validate:"omitempty,oneof=moderate_carb lower_carb higher_carb"`
	TargetWeight  float64              `json:"target_weight" validate:"omitempty,gt=0"`
	SpecificGoals string               `json:"specific_goals"`
	HealthHistory models.HealthHistory `json:"health_history"`
}

func validateAssessmentInput(input AssessmentInput) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var verr validator.ValidationErrors
	if errors.As(err, &verr) && len(verr) > 0 {
		field := verr[0]
		if field.Tag() == "required" {
			return utils.NewAppError(
				"Missing required field: "+field.Field(),
				http.StatusBadRequest,
				utils.ErrMissingField,
			)
		}
		return utils.NewAppError(
			"Invalid value for field: "+field.Field(),
			http.StatusBadRequest,
			utils.ErrInvalidInput,
		)
	}
	return utils.NewAppError("Invalid assessment input", http.StatusBadRequest, utils.ErrInvalidInput)
}

// ComputeMetrics runs the full derivation pipeline. The Metrics record
// is always rebuilt from scratch from the five scalar inputs.
func ComputeMetrics(input AssessmentInput) (models.Metrics, error) {
	bmi, err := utils.CalculateBMI(input.Weight, input.Height)
	if err != nil {
		return models.Metrics{}, err
	}
	category := utils.GetBMICategory(bmi)

	bmr, err := utils.CalculateBMR(input.Weight, input.Height, input.Age, input.Gender)
	if err != nil {
		return models.Metrics{}, err
	}

	tdee, err := utils.CalculateTDEE(bmr, input.ActivityLevel)
	if err != nil {
		return models.Metrics{}, err
	}

	finalCal := utils.CalculateFinalCalories(tdee, input.HealthGoal)
	macros := utils.CalculateMacronutrients(
		input.Weight, input.Height,
		input.HealthGoal, category, input.MacroRatio,
		finalCal,
	)

	return models.Metrics{
		BMI:            bmi,
		BMICategory:    category,
		BMR:            bmr,
		TDEE:           tdee,
		FinalCal:       finalCal,
		Macronutrients: macros,
	}, nil
}

// UpsertAssessment replaces the user's health profile wholesale. The
// write is a single ON CONFLICT upsert on user_id, so concurrent
// submissions cannot leave duplicate rows. The returned bool reports
// whether a profile already existed (for the response message only).
func UpsertAssessment(userID uint, input AssessmentInput) (*models.HealthAssessment, bool, error) {
	if err := validateAssessmentInput(input); err != nil {
		return nil, false, err
	}

	metrics, err := ComputeMetrics(input)
	if err != nil {
		return nil, false, err
	}

	var existing models.HealthAssessment
	existed := true
	err = config.DB.Select("id").Where("user_id = ?", userID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		existed = false
	} else if err != nil {
		return nil, false, storageError("checking existing assessment", err)
	}

	assessment := models.HealthAssessment{
		UserID:        userID,
		Height:        input.Height,
		Weight:        input.Weight,
		Age:           input.Age,
		Gender:        input.Gender,
		ActivityLevel: input.ActivityLevel,
		HealthGoal:    input.HealthGoal,
		MacroRatio:    input.MacroRatio,
		TargetWeight:  input.TargetWeight,
		SpecificGoals: input.SpecificGoals,
		HealthHistory: datatypes.NewJSONType(input.HealthHistory),
		Metrics:       datatypes.NewJSONType(metrics),
	}

	err = config.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"height", "weight", "age", "gender",
			"activity_level", "health_goal", "macro_ratio",
			"target_weight", "specific_goals",
			"health_history", "metrics", "updated_at",
		}),
	}).Create(&assessment).Error
	if err != nil {
		return nil, false, storageError("saving assessment", err)
	}

	var saved models.HealthAssessment
	if err := config.DB.Where("user_id = ?", userID).First(&saved).Error; err != nil {
		return nil, false, storageError("reloading assessment", err)
	}
	return &saved, existed, nil
}

// GetAssessment fetches the caller's health profile, or a not-found
// error directing them to complete the assessment first.
func GetAssessment(userID uint) (*models.HealthAssessment, error) {
	var assessment models.HealthAssessment
	err := config.DB.Where("user_id = ?", userID).First(&assessment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.NewAppError(
			"Health assessment not found. Please complete your health assessment first",
			http.StatusNotFound,
			utils.ErrResourceNotFound,
		)
	}
	if err != nil {
		return nil, storageError("fetching assessment", err)
	}
	return &assessment, nil
}
