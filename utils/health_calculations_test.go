package utils

import (
	"errors"
	"testing"
)

func TestCalculateBMI(t *testing.T) {
	tests := []struct {
		name    string
		weight  float64
		height  float64
		want    float64
		wantErr bool
	}{
		{name: "typical", weight: 70, height: 175, want: 22.86},
		{name: "rounds to 2 decimals", weight: 68.5, height: 172, want: 23.15},
		{name: "zero weight", weight: 0, height: 175, wantErr: true},
		{name: "negative height", weight: 70, height: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CalculateBMI(tt.weight, tt.height)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got bmi=%v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("CalculateBMI(%v,%v) = %v, want %v", tt.weight, tt.height, got, tt.want)
			}
		})
	}
}

func TestGetBMICategoryBoundaries(t *testing.T) {
	tests := []struct {
		bmi  float64
		want string
	}{
		{16.0, "Underweight"},
		{18.49, "Underweight"},
		{18.5, "Normal"}, // boundary is closed
		{24.99, "Normal"},
		{25.0, "Overweight"},
		{29.99, "Overweight"},
		{30.0, "Obese"},
		{42.0, "Obese"},
	}

	for _, tt := range tests {
		if got := GetBMICategory(tt.bmi); got != tt.want {
			t.Errorf("GetBMICategory(%v) = %q, want %q", tt.bmi, got, tt.want)
		}
	}
}

func TestCalculateBMR(t *testing.T) {
	// Mifflin-St Jeor: 10*70 + 6.25*175 - 5*30 = 1643.75
	male, err := CalculateBMR(70, 175, 30, "male")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if male != 1649 {
		t.Errorf("male BMR = %d, want 1649", male)
	}

	female, err := CalculateBMR(70, 175, 30, "female")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if female != 1493 {
		t.Errorf("female BMR = %d, want 1493", female)
	}

	if male-female != 156 {
		t.Errorf("male/female offset = %d, want 156", male-female)
	}

	if _, err := CalculateBMR(70, 175, 30, "unknown"); err == nil {
		t.Error("expected error for unrecognized gender")
	}
	if _, err := CalculateBMR(-70, 175, 30, "male"); err == nil {
		t.Error("expected error for negative weight")
	}
}

func TestCalculateTDEE(t *testing.T) {
	got, err := CalculateTDEE(1673, "sedentary")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2008 {
		t.Errorf("TDEE(1673, sedentary) = %d, want 2008", got)
	}

	_, err = CalculateTDEE(1673, "couch_potato")
	if err == nil {
		t.Fatal("expected error for unrecognized activity level")
	}
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Code != ErrInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}

func TestCalculateFinalCalories(t *testing.T) {
	tests := []struct {
		tdee int
		goal string
		want int
	}{
		{2008, "weight_loss", 1508},
		{1400, "weight_loss", 1200}, // floor applies
		{2008, "muscle_gain", 2508},
		{2008, "maintenance", 2008},
	}

	for _, tt := range tests {
		if got := CalculateFinalCalories(tt.tdee, tt.goal); got != tt.want {
			t.Errorf("CalculateFinalCalories(%d,%q) = %d, want %d", tt.tdee, tt.goal, got, tt.want)
		}
	}
}

func TestCalculateMacronutrients(t *testing.T) {
	// 70kg / 175cm maintenance: protein 112g, 448 kcal; 1560 kcal left
	// split 50/50 -> carbs 195g, fats 87g (above both floors).
	got := CalculateMacronutrients(70, 175, "maintenance", "Normal", "moderate_carb", 2008)
	want := Macronutrients{Protein: 112, Carbs: 195, Fats: 87}
	if got != want {
		t.Errorf("macros = %+v, want %+v", got, want)
	}
}

func TestCalculateMacronutrientsAdjustedWeight(t *testing.T) {
	// Obese profile: protein is dosed on adjusted weight
	// ideal = 48 + 2.7*(175/2.54 - 60) = 72.02, adjusted = 79.02,
	// protein = round(79.02 * 2.2) = 174.
	got := CalculateMacronutrients(100, 175, "weight_loss", "Obese", "moderate_carb", 1500)
	if got.Protein != 174 {
		t.Errorf("adjusted protein = %d, want 174", got.Protein)
	}

	// Same weight at Normal category doses on actual weight.
	normal := CalculateMacronutrients(100, 175, "weight_loss", "Normal", "moderate_carb", 1500)
	if normal.Protein != 220 {
		t.Errorf("unadjusted protein = %d, want 220", normal.Protein)
	}
}

func TestCalculateMacronutrientsFloors(t *testing.T) {
	// Low remaining calories force both the 130g carb floor and the
	// weight*0.5 fat floor.
	got := CalculateMacronutrients(80, 180, "weight_loss", "Normal", "moderate_carb", 1200)
	if got.Carbs != 130 {
		t.Errorf("carb floor: got %d, want 130", got.Carbs)
	}
	if got.Fats < 40 {
		t.Errorf("fat floor: got %d, want at least 40", got.Fats)
	}
}

func TestCalculateMacronutrientsUnknownRatioDefaults(t *testing.T) {
	def := CalculateMacronutrients(70, 175, "maintenance", "Normal", "moderate_carb", 2008)
	unknown := CalculateMacronutrients(70, 175, "maintenance", "Normal", "keto_extreme", 2008)
	if def != unknown {
		t.Errorf("unknown ratio should fall back to moderate_carb: %+v vs %+v", unknown, def)
	}
}

func TestCalculateMacronutrientsIdempotent(t *testing.T) {
	first := CalculateMacronutrients(70, 175, "muscle_gain", "Normal", "higher_carb", 2508)
	second := CalculateMacronutrients(70, 175, "muscle_gain", "Normal", "higher_carb", 2508)
	if first != second {
		t.Errorf("macro split not idempotent: %+v vs %+v", first, second)
	}
}
