package controllers

import (
	"net/http"

	"smartbite/config"
	"smartbite/services"
	"smartbite/utils"

	"github.com/gin-gonic/gin"
)

func reports() *services.ReportService {
	return services.NewReportService(config.DB, services.NewSpoonacularService())
}

func GroceryList(c *gin.Context) {
	items, err := reports().GroceryList(c.GetUint("userID"))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	if c.Query("format") == "csv" {
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="grocery_list.csv"`)
		if err := services.WriteGroceryCSV(c.Writer, items); err != nil {
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": items})
}

func Progress(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	wp, err := reports().WeeklyProgress(user.ID, utils.CalculateTDEE(user))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if c.Query("format") == "csv" {
		c.Header("Content-Type", "text/csv; charset=utf-8")
		c.Header("Content-Disposition", `attachment; filename="weekly_progress_report.csv"`)
		if err := wp.WriteCSV(c.Writer); err != nil {
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, wp)
}
