package routes

import (
	"github.com/billysm23/FitKitchen-BackendTST/controllers"
	"github.com/billysm23/FitKitchen-BackendTST/middlewares"

	"github.com/gin-gonic/gin"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	api := r.Group("/api")

	// Public auth routes
	auth := api.Group("/auth")
	{
		auth.POST("/register", controllers.Register)
		auth.POST("/login", controllers.Login)
	}
	auth.POST("/logout", middlewares.AuthMiddleware(), controllers.Logout)

	// Everything else requires an authenticated session
	protected := api.Group("")
	protected.Use(middlewares.AuthMiddleware())
	{
		protected.GET("/profile", controllers.GetProfile)
		protected.POST("/assessment", controllers.CreateAssessment)

		menus := protected.Group("/menus")
		{
			menus.GET("/category/:category", controllers.GetMenusByCategory)
			menus.GET("/search", controllers.SearchMenus)
			menus.GET("/recommendations", controllers.GetRecommendedMenus)
			menus.POST("/validate", controllers.ValidateMenuSelection)
			menus.GET("/:id", controllers.GetMenuDetails)
			menus.POST("/:id/image", controllers.UploadMenuImage)
		}

		plans := protected.Group("/meal-plans")
		{
			plans.POST("/initialize", controllers.InitializePlan)
			plans.POST("", controllers.CreatePlan)
			plans.GET("/active", controllers.GetActivePlans)
			plans.PATCH("/:plan_id/status", controllers.UpdatePlanStatus)
			plans.GET("/history", controllers.GetPlanHistory)
		}
	}

	return r
}
