package controllers

import (
	"net/http"
	"strconv"

	"smartbite/config"
	"smartbite/models"
	"smartbite/services"

	"github.com/gin-gonic/gin"
)

const (
	msgGenerateFailed = "Could not generate a meal plan. The API may be unavailable or your daily quota exceeded."
	msgSwapFailed     = "Could not find a replacement meal. Please try again later or check your API quota."
)

type PlanController struct {
	Hub *services.RealtimeHub
}

func NewPlanController(hub *services.RealtimeHub) *PlanController {
	return &PlanController{Hub: hub}
}

func (pc *PlanController) planner() *services.PlannerService {
	return services.NewPlannerService(config.DB, services.NewSpoonacularService())
}

func currentUser(c *gin.Context) (*models.User, bool) {
	var user models.User
	if err := config.DB.First(&user, c.GetUint("userID")).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return nil, false
	}
	return &user, true
}

func mealID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid meal id"})
		return 0, false
	}
	return uint(id), true
}

func (pc *PlanController) GeneratePlan(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	created, err := pc.planner().GeneratePlan(user)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": msgGenerateFailed})
		return
	}

	pc.Hub.BroadcastEvent(user.ID, "plan.generated", gin.H{"meals_created": created})

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"meals_created": created,
		"message":       "Your new, personalized meal plan has been generated!",
	})
}

func (pc *PlanController) GetPlan(c *gin.Context) {
	days, err := pc.planner().PlanByDay(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}

func (pc *PlanController) SwapMeal(c *gin.Context) {
	id, ok := mealID(c)
	if !ok {
		return
	}
	userID := c.GetUint("userID")

	meal, err := pc.planner().SwapMeal(userID, id)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "error": msgSwapFailed})
		return
	}

	pc.Hub.BroadcastEvent(userID, "meal.swapped", meal)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"meal_name": meal.Name,
		"calories":  meal.Calories,
		"image_url": meal.ImageURL,
	})
}

func (pc *PlanController) ToggleEaten(c *gin.Context) {
	id, ok := mealID(c)
	if !ok {
		return
	}
	userID := c.GetUint("userID")

	meal, err := pc.planner().ToggleEaten(userID, id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "meal not found"})
		return
	}

	pc.Hub.BroadcastEvent(userID, "meal.eaten", gin.H{"meal_id": meal.ID, "eaten": meal.Eaten})

	c.JSON(http.StatusOK, gin.H{"success": true, "eaten": meal.Eaten})
}

func (pc *PlanController) AddMeal(c *gin.Context) {
	var input services.AddMealInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	meal, err := pc.planner().AddMeal(c.GetUint("userID"), input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "meal": meal})
}

func (pc *PlanController) Discover(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	recipes, err := pc.planner().Discover(user)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}
