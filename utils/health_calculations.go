package utils

import (
	"math"
	"net/http"
)

// ActivityMultipliers maps activity level to its TDEE multiplier.
// Built once; callers must treat it as read-only.
var ActivityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// macroRatios splits the calories remaining after protein between carbs and fats.
var macroRatios = map[string]struct{ Carbs, Fats float64 }{
	"moderate_carb": {Carbs: 0.50, Fats: 0.50},
	"lower_carb":    {Carbs: 0.25, Fats: 0.75},
	"higher_carb":   {Carbs: 0.70, Fats: 0.30},
}

// Macronutrients are daily targets in grams.
type Macronutrients struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fats    int `json:"fats"`
}

// CalculateBMI expects weight in kilograms and height in centimeters,
// returns BMI rounded to 2 decimals.
func CalculateBMI(weight, height float64) (float64, error) {
	if weight <= 0 {
		return 0, NewAppError("Invalid weight value", http.StatusBadRequest, ErrInvalidInput)
	}
	if height <= 0 {
		return 0, NewAppError("Invalid height value", http.StatusBadRequest, ErrInvalidInput)
	}

	h := height / 100.0 // to meters
	bmi := weight / (h * h)
	return math.Round(bmi*100) / 100, nil
}

// GetBMICategory uses closed bounds: BMI of exactly 25.0 is Overweight.
func GetBMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// CalculateBMR implements Mifflin-St Jeor, rounded to the nearest kcal.
func CalculateBMR(weight, height float64, age int, gender string) (int, error) {
	if weight <= 0 || height <= 0 || age <= 0 {
		return 0, NewAppError("Weight, height and age must be positive", http.StatusBadRequest, ErrInvalidInput)
	}
	base := 10*weight + 6.25*height - 5*float64(age)
	switch gender {
	case "male":
		return int(math.Round(base + 5)), nil
	case "female":
		return int(math.Round(base - 151)), nil
	default:
		return 0, NewAppError("Gender must be 'male' or 'female'", http.StatusBadRequest, ErrInvalidInput)
	}
}

// CalculateTDEE scales BMR by the activity multiplier. An unknown
// activity level is an error, not a silent default.
func CalculateTDEE(bmr int, activityLevel string) (int, error) {
	mult, ok := ActivityMultipliers[activityLevel]
	if !ok {
		return 0, NewAppError("Unknown activity level: "+activityLevel, http.StatusBadRequest, ErrInvalidInput)
	}
	return int(math.Round(float64(bmr) * mult)), nil
}

// CalculateFinalCalories adjusts TDEE for the health goal. Weight loss
// never drops below the 1200 kcal floor.
func CalculateFinalCalories(tdee int, goal string) int {
	switch goal {
	case "muscle_gain":
		return tdee + 500
	case "weight_loss":
		if tdee-500 < 1200 {
			return 1200
		}
		return tdee - 500
	default:
		return tdee
	}
}

// CalculateMacronutrients resolves daily protein/carb/fat gram targets.
//
// Protein is dosed per kg of body weight, except for Overweight/Obese
// profiles where an adjusted weight (Devine ideal weight plus a quarter
// of the excess) is substituted so targets don't scale with excess mass.
// Carbs floor at 130g, fats at half the body weight in grams.
func CalculateMacronutrients(weight, height float64, goal, bmiCategory, macroRatio string, finalCal int) Macronutrients {
	proteinPerKg := 1.6
	switch goal {
	case "muscle_gain":
		proteinPerKg = 2.0
	case "weight_loss":
		proteinPerKg = 2.2
	}

	adjustedWeight := weight
	if bmiCategory == "Overweight" || bmiCategory == "Obese" {
		idealWeight := 48.0 + 2.7*(height/2.54-60)
		adjustedWeight = idealWeight + 0.25*(weight-idealWeight)
	}

	proteinGrams := int(math.Round(adjustedWeight * proteinPerKg))
	remainingCals := float64(finalCal - proteinGrams*4)

	ratio, ok := macroRatios[macroRatio]
	if !ok {
		ratio = macroRatios["moderate_carb"]
	}

	carbGrams := int(math.Round(remainingCals * ratio.Carbs / 4))
	if carbGrams < 130 {
		carbGrams = 130
	}
	fatGrams := int(math.Round(remainingCals * ratio.Fats / 9))
	if minFat := int(math.Round(weight * 0.5)); fatGrams < minFat {
		fatGrams = minFat
	}

	return Macronutrients{
		Protein: proteinGrams,
		Carbs:   carbGrams,
		Fats:    fatGrams,
	}
}
