package services

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type SpoonacularService struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewSpoonacularService initializes the client with the API key from the
// environment.
func NewSpoonacularService() *SpoonacularService {
	return newSpoonacularService("https://api.spoonacular.com", os.Getenv("SPOONACULAR_API_KEY"))
}

func newSpoonacularService(baseURL, apiKey string) *SpoonacularService {
	return &SpoonacularService{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// RecipeStub is the shallow recipe reference returned by the meal planner.
type RecipeStub struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

type DayMeals struct {
	Meals []RecipeStub `json:"meals"`
}

// WeekPlan maps lowercase day names ("monday"…) to that day's meals.
type WeekPlan struct {
	Week map[string]DayMeals `json:"week"`
}

type Nutrient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type Nutrition struct {
	Nutrients []Nutrient `json:"nutrients"`
}

type Ingredient struct {
	Name string `json:"name"`
}

type Recipe struct {
	ID                  int64        `json:"id"`
	Title               string       `json:"title"`
	Image               string       `json:"image"`
	ReadyInMinutes      int          `json:"readyInMinutes"`
	Servings            int          `json:"servings"`
	Nutrition           Nutrition    `json:"nutrition"`
	ExtendedIngredients []Ingredient `json:"extendedIngredients"`
}

func (s *SpoonacularService) get(endpoint string, params url.Values, out any) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("apiKey", s.apiKey)
	u := fmt.Sprintf("%s/%s?%s", s.baseURL, endpoint, params.Encode())

	resp, err := s.client.Get(u)
	if err != nil {
		return fmt.Errorf("failed to call Spoonacular %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Spoonacular %s response: %w", endpoint, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("spoonacular API error %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse Spoonacular %s JSON: %w", endpoint, err)
	}
	return nil
}

// GenerateWeekPlan calls the meal planner generator. diet may be empty.
func (s *SpoonacularService) GenerateWeekPlan(targetCalories int, diet string) (*WeekPlan, error) {
	params := url.Values{}
	params.Set("timeFrame", "week")
	params.Set("targetCalories", strconv.Itoa(targetCalories))
	if diet != "" {
		params.Set("diet", diet)
	}

	var plan WeekPlan
	if err := s.get("mealplanner/generate", params, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// RecipeInformationBulk fetches full recipe details for a set of ids in one
// call.
func (s *SpoonacularService) RecipeInformationBulk(ids []int64, includeNutrition bool) ([]Recipe, error) {
	strs := make([]string, 0, len(ids))
	for _, id := range ids {
		strs = append(strs, strconv.FormatInt(id, 10))
	}
	params := url.Values{}
	params.Set("ids", strings.Join(strs, ","))
	if includeNutrition {
		params.Set("includeNutrition", "true")
	}

	var recipes []Recipe
	if err := s.get("recipes/informationBulk", params, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

type complexSearchResponse struct {
	Results []Recipe `json:"results"`
}

func (s *SpoonacularService) ComplexSearch(params url.Values) ([]Recipe, error) {
	var res complexSearchResponse
	if err := s.get("recipes/complexSearch", params, &res); err != nil {
		return nil, err
	}
	return res.Results, nil
}

type randomRecipesResponse struct {
	Recipes []Recipe `json:"recipes"`
}

func (s *SpoonacularService) RandomRecipes(number int) ([]Recipe, error) {
	params := url.Values{}
	params.Set("number", strconv.Itoa(number))
	params.Set("addRecipeNutrition", "true")

	var res randomRecipesResponse
	if err := s.get("recipes/random", params, &res); err != nil {
		return nil, err
	}
	return res.Recipes, nil
}

// NutrientAmount returns the amount of the named nutrient, or def when the
// nutrient is absent from the list.
func NutrientAmount(nutrients []Nutrient, name string, def float64) float64 {
	for _, n := range nutrients {
		if n.Name == name {
			return n.Amount
		}
	}
	return def
}
