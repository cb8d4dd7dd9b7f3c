package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func newFakeSpoonacular(t *testing.T, handler http.Handler) *SpoonacularService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return newSpoonacularService(srv.URL, "test-key")
}

func TestNutrientAmount(t *testing.T) {
	nutrients := []Nutrient{
		{Name: "Calories", Amount: 512.4, Unit: "kcal"},
		{Name: "Protein", Amount: 31.2, Unit: "g"},
	}

	tests := []struct {
		name     string
		nutrient string
		def      float64
		want     float64
	}{
		{"present", "Calories", 0, 512.4},
		{"present with default", "Protein", 99, 31.2},
		{"absent uses default", "Fat", 0, 0},
		{"absent uses non-zero default", "Carbohydrates", 450, 450},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NutrientAmount(nutrients, tt.nutrient, tt.def); got != tt.want {
				t.Errorf("NutrientAmount(%q) = %v, want %v", tt.nutrient, got, tt.want)
			}
		})
	}

	if got := NutrientAmount(nil, "Calories", 7); got != 7 {
		t.Errorf("NutrientAmount(nil) = %v, want 7", got)
	}
}

func TestGenerateWeekPlan(t *testing.T) {
	var gotQuery map[string]string
	svc := newFakeSpoonacular(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mealplanner/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		gotQuery = map[string]string{
			"apiKey":         q.Get("apiKey"),
			"timeFrame":      q.Get("timeFrame"),
			"targetCalories": q.Get("targetCalories"),
			"diet":           q.Get("diet"),
		}
		w.Write([]byte(`{"week":{"monday":{"meals":[{"id":11,"title":"Oatmeal"},{"id":12,"title":"Pasta"}]}}}`))
	}))

	plan, err := svc.GenerateWeekPlan(2200, "Vegetarian")
	if err != nil {
		t.Fatalf("GenerateWeekPlan() error = %v", err)
	}

	if gotQuery["apiKey"] != "test-key" {
		t.Errorf("apiKey = %q, want test-key", gotQuery["apiKey"])
	}
	if gotQuery["timeFrame"] != "week" || gotQuery["targetCalories"] != "2200" || gotQuery["diet"] != "Vegetarian" {
		t.Errorf("unexpected query params: %v", gotQuery)
	}

	meals := plan.Week["monday"].Meals
	if len(meals) != 2 || meals[0].ID != 11 || meals[1].Title != "Pasta" {
		t.Errorf("unexpected week plan: %+v", plan.Week)
	}
}

func TestRecipeInformationBulk(t *testing.T) {
	svc := newFakeSpoonacular(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("ids") != "11,12" {
			t.Errorf("ids = %q, want 11,12", q.Get("ids"))
		}
		if q.Get("includeNutrition") != "true" {
			t.Errorf("includeNutrition = %q, want true", q.Get("includeNutrition"))
		}
		w.Write([]byte(`[
			{"id":11,"title":"Oatmeal","image":"oat.jpg","nutrition":{"nutrients":[{"name":"Calories","amount":320.7,"unit":"kcal"}]}},
			{"id":12,"title":"Pasta","extendedIngredients":[{"name":"penne"}]}
		]`))
	}))

	recipes, err := svc.RecipeInformationBulk([]int64{11, 12}, true)
	if err != nil {
		t.Fatalf("RecipeInformationBulk() error = %v", err)
	}
	if len(recipes) != 2 {
		t.Fatalf("got %d recipes, want 2", len(recipes))
	}
	if got := NutrientAmount(recipes[0].Nutrition.Nutrients, "Calories", 0); got != 320.7 {
		t.Errorf("calories = %v, want 320.7", got)
	}
	if recipes[1].ExtendedIngredients[0].Name != "penne" {
		t.Errorf("ingredient = %q, want penne", recipes[1].ExtendedIngredients[0].Name)
	}
}

func TestSpoonacularAPIError(t *testing.T) {
	svc := newFakeSpoonacular(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"message":"quota exceeded"}`))
	}))

	if _, err := svc.GenerateWeekPlan(2000, ""); err == nil {
		t.Error("GenerateWeekPlan() expected error on non-200 status")
	}
	if _, err := svc.RandomRecipes(1); err == nil {
		t.Error("RandomRecipes() expected error on non-200 status")
	}
}
