package services

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"smartbite/models"
	"smartbite/utils"

	"gorm.io/gorm"
)

var (
	ErrEmptyWeek     = errors.New("meal plan service returned an empty week")
	ErrNoReplacement = errors.New("no replacement meal available")
)

// DaysOfWeek fixes the plan ordering; the generator's week object is keyed by
// lowercase day names.
var DaysOfWeek = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type PlannerService struct {
	db  *gorm.DB
	api *SpoonacularService
}

func NewPlannerService(db *gorm.DB, api *SpoonacularService) *PlannerService {
	return &PlannerService{db: db, api: api}
}

func slotForIndex(i int) string {
	switch i {
	case 0:
		return "Breakfast"
	case 1:
		return "Lunch"
	case 2:
		return "Dinner"
	default:
		return fmt.Sprintf("Meal %d", i+1)
	}
}

// dietForHealthIssues picks the generator diet the same way the profile
// questionnaire phrases it: the first matching condition wins.
func dietForHealthIssues(healthIssues string) string {
	issues := strings.ToLower(healthIssues)
	switch {
	case strings.Contains(issues, "gluten"):
		return "Gluten Free"
	case strings.Contains(issues, "vegetarian"):
		return "Vegetarian"
	case strings.Contains(issues, "vegan"):
		return "Vegan"
	}
	return ""
}

// GeneratePlan builds a fresh weekly plan for the user, replacing any
// existing rows. It is a two-step fetch: the generator only returns recipe
// stubs, so nutrition comes from a bulk information call.
func (s *PlannerService) GeneratePlan(user *models.User) (int, error) {
	target := utils.CalorieTarget(user)
	diet := dietForHealthIssues(user.HealthIssues)

	plan, err := s.api.GenerateWeekPlan(target, diet)
	if err != nil {
		return 0, err
	}
	if len(plan.Week) == 0 {
		return 0, ErrEmptyWeek
	}

	var ids []int64
	for _, day := range DaysOfWeek {
		for _, stub := range plan.Week[strings.ToLower(day)].Meals {
			ids = append(ids, stub.ID)
		}
	}

	details, err := s.api.RecipeInformationBulk(ids, true)
	if err != nil {
		return 0, err
	}
	byID := make(map[int64]Recipe, len(details))
	for _, r := range details {
		byID[r.ID] = r
	}

	if err := s.db.Where("user_id = ?", user.ID).Delete(&models.PlannedMeal{}).Error; err != nil {
		return 0, err
	}

	created := 0
	for _, day := range DaysOfWeek {
		for i, stub := range plan.Week[strings.ToLower(day)].Meals {
			det, ok := byID[stub.ID]
			if !ok {
				continue
			}

			nutrients := det.Nutrition.Nutrients
			calories := NutrientAmount(nutrients, "Calories", 0)
			protein := NutrientAmount(nutrients, "Protein", 0)
			carbs := NutrientAmount(nutrients, "Carbohydrates", 0)
			fats := NutrientAmount(nutrients, "Fat", 0)

			name := det.Title
			if name == "" {
				name = "Generated Meal"
			}

			meal := models.PlannedMeal{
				UserID:        user.ID,
				Day:           day,
				Slot:          slotForIndex(i),
				Name:          name,
				SpoonacularID: det.ID,
				Calories:      int(math.Round(calories)),
				Protein:       fmt.Sprintf("%dg", int(math.Round(protein))),
				Carbs:         fmt.Sprintf("%dg", int(math.Round(carbs))),
				Fats:          fmt.Sprintf("%dg", int(math.Round(fats))),
				ImageURL:      det.Image,
			}
			if err := s.db.Create(&meal).Error; err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}

type DayPlan struct {
	Day   string               `json:"day"`
	Meals []models.PlannedMeal `json:"meals"`
}

// PlanByDay returns the user's plan bucketed Monday→Sunday; every day is
// present even when empty.
func (s *PlannerService) PlanByDay(userID uint) ([]DayPlan, error) {
	var meals []models.PlannedMeal
	if err := s.db.
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&meals).Error; err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.PlannedMeal, len(DaysOfWeek))
	for _, m := range meals {
		grouped[m.Day] = append(grouped[m.Day], m)
	}

	out := make([]DayPlan, 0, len(DaysOfWeek))
	for _, day := range DaysOfWeek {
		dayMeals := grouped[day]
		if dayMeals == nil {
			dayMeals = []models.PlannedMeal{}
		}
		out = append(out, DayPlan{Day: day, Meals: dayMeals})
	}
	return out, nil
}

// SwapMeal replaces a single planned meal with a recipe of similar calories,
// falling back to a random recipe when the search comes up empty.
func (s *PlannerService) SwapMeal(userID, mealID uint) (*models.PlannedMeal, error) {
	var meal models.PlannedMeal
	if err := s.db.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("number", "1")
	params.Set("targetCalories", strconv.Itoa(meal.Calories))
	params.Set("addRecipeNutrition", "true")

	results, err := s.api.ComplexSearch(params)
	if err != nil || len(results) == 0 {
		results, err = s.api.RandomRecipes(1)
		if err != nil {
			return nil, err
		}
	}
	if len(results) == 0 {
		return nil, ErrNoReplacement
	}

	replacement := results[0]
	calories := NutrientAmount(replacement.Nutrition.Nutrients, "Calories", float64(meal.Calories))

	meal.Name = replacement.Title
	meal.SpoonacularID = replacement.ID
	meal.Calories = int(math.Round(calories))
	meal.ImageURL = replacement.Image

	if err := s.db.Save(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

// ToggleEaten flips the eaten flag, stamping EatenAt when the meal is marked
// eaten and clearing it otherwise.
func (s *PlannerService) ToggleEaten(userID, mealID uint) (*models.PlannedMeal, error) {
	var meal models.PlannedMeal
	if err := s.db.
		Where("id = ? AND user_id = ?", mealID, userID).
		First(&meal).Error; err != nil {
		return nil, err
	}

	meal.Eaten = !meal.Eaten
	if meal.Eaten {
		now := time.Now()
		meal.EatenAt = &now
	} else {
		meal.EatenAt = nil
	}

	if err := s.db.Save(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

type AddMealInput struct {
	Day      string `json:"day" binding:"required"`
	MealType string `json:"meal_type" binding:"required"`
	Name     string `json:"name" binding:"required"`
	RecipeID int64  `json:"recipe_id"`
	Calories int    `json:"calories"`
	Image    string `json:"image"`
}

// AddMeal appends an ad-hoc row to the user's plan.
func (s *PlannerService) AddMeal(userID uint, input AddMealInput) (*models.PlannedMeal, error) {
	meal := models.PlannedMeal{
		UserID:        userID,
		Day:           input.Day,
		Slot:          input.MealType,
		Name:          input.Name,
		SpoonacularID: input.RecipeID,
		Calories:      input.Calories,
		ImageURL:      input.Image,
	}
	if err := s.db.Create(&meal).Error; err != nil {
		return nil, err
	}
	return &meal, nil
}

type DiscoverRecipe struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Image          string `json:"image"`
	ReadyInMinutes int    `json:"readyInMinutes"`
	Servings       int    `json:"servings"`
	Calories       int    `json:"calories"`
}

// Discover searches the catalog for recipes matching the user's health
// issues (diet and intolerances derived from the free-text field).
func (s *PlannerService) Discover(user *models.User) ([]DiscoverRecipe, error) {
	issues := strings.ToLower(user.HealthIssues)

	params := url.Values{}
	params.Set("number", "12")
	params.Set("addRecipeNutrition", "true")
	params.Set("cuisine", "Indian")
	if strings.Contains(issues, "diabetes") {
		params.Set("diet", "low glycemic")
	}

	var intolerances []string
	if strings.Contains(issues, "gluten") {
		intolerances = append(intolerances, "gluten")
	}
	if strings.Contains(issues, "dairy") || strings.Contains(issues, "lactose") {
		intolerances = append(intolerances, "dairy")
	}
	if len(intolerances) > 0 {
		params.Set("intolerances", strings.Join(intolerances, ","))
	}

	results, err := s.api.ComplexSearch(params)
	if err != nil {
		return nil, err
	}

	out := make([]DiscoverRecipe, 0, len(results))
	for _, r := range results {
		calories := NutrientAmount(r.Nutrition.Nutrients, "Calories", 0)
		out = append(out, DiscoverRecipe{
			ID:             r.ID,
			Title:          r.Title,
			Image:          r.Image,
			ReadyInMinutes: r.ReadyInMinutes,
			Servings:       r.Servings,
			Calories:       int(math.Round(calories)),
		})
	}
	return out, nil
}
