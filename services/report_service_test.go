package services

import (
	"bytes"
	"net/http"
	"testing"
	"time"

	"smartbite/models"
)

func TestGroceryList(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	rows := []models.PlannedMeal{
		{UserID: user.ID, Day: "Monday", Slot: "Breakfast", Name: "Oatmeal", SpoonacularID: 1},
		{UserID: user.ID, Day: "Monday", Slot: "Lunch", Name: "Pasta", SpoonacularID: 2},
		{UserID: user.ID, Day: "Monday", Slot: "Other", Name: "Homemade", SpoonacularID: 0}, // no recipe id
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatal(err)
		}
	}

	api := newFakeSpoonacular(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("ids") != "1,2" {
			t.Errorf("ids = %q, want 1,2", q.Get("ids"))
		}
		if q.Get("includeNutrition") != "" {
			t.Error("grocery list must not request nutrition")
		}
		w.Write([]byte(`[
			{"id":1,"extendedIngredients":[{"name":"rolled oats"},{"name":"MILK"},{"name":""}]},
			{"id":2,"extendedIngredients":[{"name":"milk"},{"name":"penne"}]}
		]`))
	}))

	items, err := NewReportService(db, api).GroceryList(user.ID)
	if err != nil {
		t.Fatalf("GroceryList() error = %v", err)
	}

	want := []string{"Milk", "Penne", "Rolled oats"}
	if len(items) != len(want) {
		t.Fatalf("got %v, want %v", items, want)
	}
	for i := range want {
		if items[i] != want[i] {
			t.Errorf("items[%d] = %q, want %q", i, items[i], want[i])
		}
	}
}

func TestGroceryListEmptyPlan(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	api := newFakeSpoonacular(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("empty plan must not hit the recipe API")
	}))

	items, err := NewReportService(db, api).GroceryList(user.ID)
	if err != nil {
		t.Fatalf("GroceryList() error = %v", err)
	}
	if len(items) != 0 {
		t.Errorf("got %v, want empty list", items)
	}
}

func eatenAt(daysAgo int) *time.Time {
	ts := time.Now().AddDate(0, 0, -daysAgo)
	return &ts
}

func TestWeeklyProgress(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	rows := []models.PlannedMeal{
		{UserID: user.ID, Day: "Monday", Slot: "Breakfast", Name: "A", Calories: 600, Eaten: true, EatenAt: eatenAt(0)},
		{UserID: user.ID, Day: "Monday", Slot: "Lunch", Name: "B", Calories: 500, Eaten: true, EatenAt: eatenAt(0)},
		{UserID: user.ID, Day: "Wednesday", Slot: "Dinner", Name: "C", Calories: 450, Eaten: true, EatenAt: eatenAt(2)},
		{UserID: user.ID, Day: "Thursday", Slot: "Dinner", Name: "D", Calories: 900, Eaten: false},               // never eaten
		{UserID: user.ID, Day: "Friday", Slot: "Dinner", Name: "E", Calories: 800, Eaten: true, EatenAt: eatenAt(10)}, // outside window
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatal(err)
		}
	}

	wp, err := NewReportService(db, nil).WeeklyProgress(user.ID, 500)
	if err != nil {
		t.Fatalf("WeeklyProgress() error = %v", err)
	}

	if len(wp.Dates) != 7 || len(wp.Calories) != 7 || len(wp.MealCounts) != 7 {
		t.Fatalf("series lengths = %d/%d/%d, want 7 each", len(wp.Dates), len(wp.Calories), len(wp.MealCounts))
	}

	today := time.Now().Format("2006-01-02")
	if wp.Dates[6] != today {
		t.Errorf("last date = %q, want today %q", wp.Dates[6], today)
	}
	if wp.Calories[6] != 1100 || wp.MealCounts[6] != 2 {
		t.Errorf("today = %d kcal / %d meals, want 1100/2", wp.Calories[6], wp.MealCounts[6])
	}
	if wp.Calories[4] != 450 || wp.MealCounts[4] != 1 {
		t.Errorf("two days ago = %d kcal / %d meals, want 450/1", wp.Calories[4], wp.MealCounts[4])
	}

	if wp.TotalCalories != 1550 {
		t.Errorf("TotalCalories = %d, want 1550", wp.TotalCalories)
	}
	if wp.TotalMeals != 3 {
		t.Errorf("TotalMeals = %d, want 3", wp.TotalMeals)
	}
	// integer division over the 2 days that have data
	if wp.AvgDailyCalories != 775 {
		t.Errorf("AvgDailyCalories = %d, want 775", wp.AvgDailyCalories)
	}

	// 450 is closer to the 500 kcal TDEE than 1100
	if wp.BestDay.Calories != 450 || wp.BestDay.Date != wp.Dates[4] {
		t.Errorf("BestDay = %+v, want 450 on %s", wp.BestDay, wp.Dates[4])
	}
}

func TestWeeklyProgressNoData(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db)

	wp, err := NewReportService(db, nil).WeeklyProgress(user.ID, 2000)
	if err != nil {
		t.Fatalf("WeeklyProgress() error = %v", err)
	}
	if wp.TotalCalories != 0 || wp.TotalMeals != 0 || wp.AvgDailyCalories != 0 {
		t.Errorf("totals = %d/%d/%d, want zeros", wp.TotalCalories, wp.TotalMeals, wp.AvgDailyCalories)
	}
	if wp.BestDay.Date != "N/A" || wp.BestDay.Calories != 0 {
		t.Errorf("BestDay = %+v, want N/A with 0", wp.BestDay)
	}
}

func TestWriteGroceryCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGroceryCSV(&buf, []string{"Milk", "Penne"}); err != nil {
		t.Fatalf("WriteGroceryCSV() error = %v", err)
	}

	want := "Ingredient\nMilk\nPenne\n"
	if buf.String() != want {
		t.Errorf("csv = %q, want %q", buf.String(), want)
	}
}

func TestWriteGroceryCSVEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGroceryCSV(&buf, nil); err != nil {
		t.Fatalf("WriteGroceryCSV() error = %v", err)
	}
	if buf.String() != "Ingredient\n" {
		t.Errorf("csv = %q, want header only", buf.String())
	}
}

func TestWeeklyProgressWriteCSV(t *testing.T) {
	wp := &WeeklyProgress{
		Dates:      []string{"2026-08-25", "2026-08-26"},
		Calories:   []int{1800, 0},
		MealCounts: []int{3, 0},
	}

	var buf bytes.Buffer
	if err := wp.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV() error = %v", err)
	}

	want := "Date,Calories Consumed,Meals Eaten\n" +
		"2026-08-25,1800,3\n" +
		"2026-08-26,0,0\n"
	if buf.String() != want {
		t.Errorf("csv = %q, want %q", buf.String(), want)
	}
}

func TestCapitalize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"rolled oats", "Rolled oats"},
		{"MILK", "Milk"},
		{"penne", "Penne"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := capitalize(tt.in); got != tt.want {
			t.Errorf("capitalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
