package routes

import (
	"smartbite/controllers"
	"smartbite/middlewares"
	"smartbite/services"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	hub := services.NewRealtimeHub()
	plans := controllers.NewPlanController(hub)
	realtime := controllers.NewRealtimeController(hub)

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
		auth.POST("/verify-mfa", controllers.VerifyMFA)
		auth.POST("/forgot-password", controllers.ForgotPassword)
		auth.POST("/reset-password", controllers.ResetPassword)
	}

	// Protected user routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware())
	{
		user.GET("/profile", controllers.GetProfile)
		user.PUT("/profile", controllers.UpdateProfile)
		user.POST("/profile/picture", controllers.UploadProfilePicture)
	}

	// Meal plan
	plan := r.Group("/plan")
	plan.Use(middlewares.AuthMiddleware())
	{
		plan.POST("/generate", plans.GeneratePlan)
		plan.GET("", plans.GetPlan)
		plan.POST("/meals", plans.AddMeal)
		plan.POST("/meals/:id/swap", plans.SwapMeal)
		plan.POST("/meals/:id/toggle-eaten", plans.ToggleEaten)
	}

	// Discovery
	meals := r.Group("/meals")
	meals.Use(middlewares.AuthMiddleware())
	{
		meals.GET("/discover", plans.Discover)
	}

	// Reports (JSON, or CSV with ?format=csv)
	rep := r.Group("/reports")
	rep.Use(middlewares.AuthMiddleware())
	{
		rep.GET("/grocery-list", controllers.GroceryList)
		rep.GET("/progress", controllers.Progress)
	}

	// Realtime dashboard events
	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware())
	{
		ws.GET("/events", realtime.EventsWS)
	}

	return r
}
