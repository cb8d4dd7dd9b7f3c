package services

import (
	"errors"
	"time"

	"smartbite/config"
	"smartbite/models"
	"smartbite/utils"
)

type ProfileInput struct {
	FirstName     string  `json:"first_name"`
	LastName      string  `json:"last_name"`
	Birthday      string  `json:"birthday"` // YYYY-MM-DD
	Sex           string  `json:"sex"`
	HeightCm      float64 `json:"height_cm"`
	WeightKg      float64 `json:"weight_kg"`
	ActivityLevel string  `json:"activity_level"`
	Goal          string  `json:"goal"`
	HealthIssues  string  `json:"health_issues"`
}

func GetUserProfile(email string) (map[string]interface{}, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, errors.New("user not found")
	}

	age := 0
	birthday := ""
	if !user.Birthday.IsZero() {
		age = utils.CalculateAge(user.Birthday)
		birthday = user.Birthday.Format("2006-01-02")
	}

	return map[string]interface{}{
		"id":              user.ID,
		"email":           user.Email,
		"first_name":      user.FirstName,
		"last_name":       user.LastName,
		"birthday":        birthday,
		"age":             age,
		"sex":             user.Sex,
		"height_cm":       user.HeightCm,
		"weight_kg":       user.WeightKg,
		"activity_level":  user.ActivityLevel,
		"goal":            user.Goal,
		"health_issues":   user.HealthIssues,
		"profile_picture": user.ProfilePicture,
		"mfa_enabled":     user.MFAEnabled,
		"tdee":            int(utils.CalculateTDEE(&user)),
		"calorie_target":  utils.CalorieTarget(&user),
	}, nil
}

func UpdateUserProfile(email string, input ProfileInput) error {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return errors.New("user not found")
	}

	if input.Birthday != "" {
		bd, err := time.Parse("2006-01-02", input.Birthday)
		if err != nil {
			return errors.New("birthday must be YYYY-MM-DD")
		}
		user.Birthday = bd
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	user.Sex = input.Sex
	user.HeightCm = input.HeightCm
	user.WeightKg = input.WeightKg
	user.ActivityLevel = input.ActivityLevel
	user.Goal = input.Goal
	user.HealthIssues = input.HealthIssues

	return config.DB.Save(&user).Error
}

func SetProfilePicture(email, url string) error {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return errors.New("user not found")
	}
	user.ProfilePicture = url
	return config.DB.Save(&user).Error
}
