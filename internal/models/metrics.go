package models

import (
	"fmt"
	"math"
	"strings"
)

const (
	GoalWeightLoss  = "weight_loss"
	GoalBuildMuscle = "build_muscle"
	GoalMaintain    = "maintain"
)

var activityMultipliers = map[string]float64{
	"sedentary":         1.2,
	"lightly_active":    1.375,
	"moderately_active": 1.55,
	"very_active":       1.725,
	"extremely_active":  1.9,
}

type BMIClassification struct {
	Category string `json:"category"`
	Color    string `json:"color"`
}

type WeightRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type WeightChangePlan struct {
	WeeklyChange float64 `json:"weeklyChange"`
	Weeks        int     `json:"timeframe"`
	Message      string  `json:"message"`
}

type MacroTargets struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fats    int `json:"fats"`
}

// BodyMetrics collects everything derivable from a profile. A nil field
// means the profile lacks the inputs for it.
type BodyMetrics struct {
	BMI            *float64          `json:"bmi"`
	Classification BMIClassification `json:"classification"`
	IdealWeight    *WeightRange      `json:"idealWeight"`
	TDEE           *int              `json:"tdee"`
	CalorieTarget  *int              `json:"calorieTarget"`
	Macros         *MacroTargets     `json:"macros"`
	WeightChange   *WeightChangePlan `json:"weightChange"`
}

// BMI is rounded to one decimal place.
func BMI(weightKg float64, heightCm float64) (float64, bool) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, false
	}
	heightM := heightCm / 100
	return math.Round(weightKg/(heightM*heightM)*10) / 10, true
}

func ClassifyBMI(bmi float64) BMIClassification {
	switch {
	case bmi <= 0:
		return BMIClassification{Category: "Unknown", Color: "#718096"}
	case bmi < 18.5:
		return BMIClassification{Category: "Underweight", Color: "#4299E1"}
	case bmi < 25:
		return BMIClassification{Category: "Normal", Color: "#48BB78"}
	case bmi < 30:
		return BMIClassification{Category: "Overweight", Color: "#ECC94B"}
	default:
		return BMIClassification{Category: "Obese", Color: "#F56565"}
	}
}

// IdealWeightRange is the weight band for a BMI of 18.5 to 24.9, in whole kg.
func IdealWeightRange(heightCm float64) (WeightRange, bool) {
	if heightCm <= 0 {
		return WeightRange{}, false
	}
	heightM := heightCm / 100
	return WeightRange{
		Min: math.Round(18.5 * heightM * heightM),
		Max: math.Round(24.9 * heightM * heightM),
	}, true
}

// RecommendWeightChange paces loss at 0.75 kg and gain at 0.4 kg per week.
func RecommendWeightChange(currentKg float64, goalKg float64, primaryGoal string) (WeightChangePlan, bool) {
	if currentKg <= 0 || goalKg <= 0 {
		return WeightChangePlan{}, false
	}

	difference := goalKg - currentKg
	if primaryGoal == GoalMaintain || math.Abs(difference) < 1 {
		return WeightChangePlan{Message: "Focus on maintaining your current weight."}, true
	}

	weekly := 0.4
	if primaryGoal == GoalWeightLoss {
		weekly = -0.75
	}
	weeks := int(math.Ceil(math.Abs(difference / weekly)))
	direction := "Gain"
	if difference < 0 {
		direction = "Lose"
	}
	return WeightChangePlan{
		WeeklyChange: weekly,
		Weeks:        weeks,
		Message:      fmt.Sprintf("%s %g kg per week for approximately %d weeks.", direction, math.Abs(weekly), weeks),
	}, true
}

// TDEE applies the activity multiplier to the Mifflin-St Jeor BMR.
// Unknown activity levels count as sedentary.
func TDEE(info PersonalInfo) (int, bool) {
	age := NumberFromText(string(info.Age))
	height := NumberFromText(string(info.Height))
	weight := NumberFromText(string(info.Weight))
	gender := strings.ToLower(strings.TrimSpace(info.Gender))
	if age <= 0 || height <= 0 || weight <= 0 || gender == "" || info.ActivityLevel == "" {
		return 0, false
	}

	bmr := 10*weight + 6.25*height - 5*age - 161
	if gender == "male" {
		bmr = 10*weight + 6.25*height - 5*age + 5
	}
	multiplier, ok := activityMultipliers[info.ActivityLevel]
	if !ok {
		multiplier = activityMultipliers["sedentary"]
	}
	return int(math.Round(bmr * multiplier)), true
}

// CalorieTarget is a 20% deficit for weight loss and a 10% surplus for
// muscle gain.
func CalorieTarget(profile UserProfile) (int, bool) {
	tdee, ok := TDEE(profile.PersonalInfo)
	if !ok {
		return 0, false
	}
	switch profile.FitnessGoals.PrimaryGoal {
	case GoalWeightLoss:
		return int(math.Round(float64(tdee) * 0.8)), true
	case GoalBuildMuscle:
		return int(math.Round(float64(tdee) * 1.1)), true
	default:
		return tdee, true
	}
}

// MacrosFor sets protein per kg of body weight and fat as a share of calories;
// carbs take the remainder.
func MacrosFor(profile UserProfile) (MacroTargets, bool) {
	target, ok := CalorieTarget(profile)
	weight := NumberFromText(string(profile.PersonalInfo.Weight))
	if !ok || weight <= 0 {
		return MacroTargets{}, false
	}

	proteinPerKg, fatShare := 1.8, 0.3
	switch profile.FitnessGoals.PrimaryGoal {
	case GoalWeightLoss:
		proteinPerKg = 2.2
	case GoalBuildMuscle:
		proteinPerKg, fatShare = 2.0, 0.25
	}

	protein := int(math.Round(weight * proteinPerKg))
	fats := int(math.Round(float64(target) * fatShare / 9))
	remaining := float64(target - protein*4 - fats*9)
	return MacroTargets{Protein: protein, Carbs: int(math.Round(remaining / 4)), Fats: fats}, true
}

func ComputeBodyMetrics(profile UserProfile) BodyMetrics {
	weight := NumberFromText(string(profile.PersonalInfo.Weight))
	height := NumberFromText(string(profile.PersonalInfo.Height))

	var metrics BodyMetrics
	if bmi, ok := BMI(weight, height); ok {
		metrics.BMI = &bmi
		metrics.Classification = ClassifyBMI(bmi)
	} else {
		metrics.Classification = ClassifyBMI(0)
	}
	if band, ok := IdealWeightRange(height); ok {
		metrics.IdealWeight = &band
	}
	if tdee, ok := TDEE(profile.PersonalInfo); ok {
		metrics.TDEE = &tdee
	}
	if target, ok := CalorieTarget(profile); ok {
		metrics.CalorieTarget = &target
	}
	if macros, ok := MacrosFor(profile); ok {
		metrics.Macros = &macros
	}
	goal := NumberFromText(string(profile.FitnessGoals.TargetWeight))
	if plan, ok := RecommendWeightChange(weight, goal, profile.FitnessGoals.PrimaryGoal); ok {
		metrics.WeightChange = &plan
	}
	return metrics
}
