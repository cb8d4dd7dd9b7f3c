package services

import (
	"encoding/csv"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"smartbite/models"

	"gorm.io/gorm"
)

type ReportService struct {
	db  *gorm.DB
	api *SpoonacularService
}

func NewReportService(db *gorm.DB, api *SpoonacularService) *ReportService {
	return &ReportService{db: db, api: api}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// GroceryList collects the deduplicated, sorted ingredient names across every
// recipe in the user's plan. An empty plan yields an empty list without
// calling the catalog.
func (s *ReportService) GroceryList(userID uint) ([]string, error) {
	var ids []int64
	if err := s.db.
		Model(&models.PlannedMeal{}).
		Where("user_id = ? AND spoonacular_id > 0", userID).
		Pluck("spoonacular_id", &ids).Error; err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []string{}, nil
	}

	recipes, err := s.api.RecipeInformationBulk(ids, false)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	items := []string{}
	for _, r := range recipes {
		for _, ing := range r.ExtendedIngredients {
			name := capitalize(ing.Name)
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			items = append(items, name)
		}
	}
	sort.Strings(items)
	return items, nil
}

type BestDay struct {
	Date     string `json:"date"`
	Calories int    `json:"calories"`
}

type WeeklyProgress struct {
	Dates            []string `json:"dates"`
	Calories         []int    `json:"calories"`
	MealCounts       []int    `json:"meal_counts"`
	TotalCalories    int      `json:"total_calories_week"`
	TotalMeals       int      `json:"total_meals_week"`
	AvgDailyCalories int      `json:"avg_daily_calories"`
	BestDay          BestDay  `json:"best_day"`
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// WeeklyProgress aggregates the eaten meals of the 7 calendar days ending
// today. The best day is the one whose calories land closest to the user's
// TDEE; ties keep the earlier day.
func (s *ReportService) WeeklyProgress(userID uint, tdee float64) (*WeeklyProgress, error) {
	today := dayStart(time.Now())
	start := today.AddDate(0, 0, -6)

	var meals []models.PlannedMeal
	if err := s.db.
		Where("user_id = ? AND eaten = ? AND eaten_at >= ?", userID, true, start).
		Find(&meals).Error; err != nil {
		return nil, err
	}

	dates := make([]string, 0, 7)
	for i := 0; i < 7; i++ {
		dates = append(dates, start.AddDate(0, 0, i).Format("2006-01-02"))
	}

	calorieByDate := make(map[string]int, 7)
	countByDate := make(map[string]int, 7)
	for _, m := range meals {
		if m.EatenAt == nil {
			continue
		}
		day := m.EatenAt.Format("2006-01-02")
		if !contains(dates, day) {
			continue
		}
		calorieByDate[day] += m.Calories
		countByDate[day]++
	}

	wp := &WeeklyProgress{Dates: dates, BestDay: BestDay{Date: "N/A"}}
	daysTracked := 0
	for _, d := range dates {
		cals := calorieByDate[d]
		wp.Calories = append(wp.Calories, cals)
		wp.MealCounts = append(wp.MealCounts, countByDate[d])
		wp.TotalCalories += cals
		wp.TotalMeals += countByDate[d]
		if cals > 0 {
			daysTracked++
		}
	}
	if daysTracked > 0 {
		wp.AvgDailyCalories = wp.TotalCalories / daysTracked

		closest := math.Inf(1)
		for i, d := range dates {
			cals := wp.Calories[i]
			if cals == 0 {
				continue
			}
			if diff := math.Abs(float64(cals) - tdee); diff < closest {
				closest = diff
				wp.BestDay = BestDay{Date: d, Calories: cals}
			}
		}
	}
	return wp, nil
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}

// WriteGroceryCSV writes the single-column grocery report.
func WriteGroceryCSV(w io.Writer, items []string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Ingredient"}); err != nil {
		return err
	}
	for _, item := range items {
		if err := cw.Write([]string{item}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV writes the weekly progress report, one row per date.
func (wp *WeeklyProgress) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Date", "Calories Consumed", "Meals Eaten"}); err != nil {
		return err
	}
	for i, d := range wp.Dates {
		row := []string{d, strconv.Itoa(wp.Calories[i]), strconv.Itoa(wp.MealCounts[i])}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
