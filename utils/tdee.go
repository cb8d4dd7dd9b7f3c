package utils

import (
	"strings"
	"time"

	"smartbite/models"
)

// Fallback when the profile is missing height/weight.
const defaultTDEE = 2000

var activityFactors = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

func CalculateAge(birthday time.Time) int {
	now := time.Now()
	age := now.Year() - birthday.Year()
	if now.YearDay() < birthday.YearDay() {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}

// CalculateTDEE estimates daily energy expenditure with the Mifflin-St Jeor
// equation scaled by the profile's activity level.
func CalculateTDEE(user *models.User) float64 {
	if user == nil || user.HeightCm <= 0 || user.WeightKg <= 0 {
		return defaultTDEE
	}

	age := 0
	if !user.Birthday.IsZero() {
		age = CalculateAge(user.Birthday)
	}

	bmr := 10*user.WeightKg + 6.25*user.HeightCm - 5*float64(age)
	if strings.EqualFold(strings.TrimSpace(user.Sex), "male") {
		bmr += 5
	} else {
		bmr -= 161
	}

	factor, ok := activityFactors[strings.ToLower(strings.TrimSpace(user.ActivityLevel))]
	if !ok {
		factor = activityFactors["sedentary"]
	}
	return bmr * factor
}

// CalorieTarget adjusts the TDEE for the user's goal: a 500 kcal deficit to
// lose, a 500 kcal surplus to gain.
func CalorieTarget(user *models.User) int {
	tdee := CalculateTDEE(user)
	switch user.Goal {
	case "lose":
		tdee -= 500
	case "gain":
		tdee += 500
	}
	return int(tdee)
}
