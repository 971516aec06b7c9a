package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"github.com/wangruoshui6/meal-accounting-backend/internal/service"
)

// SaveMealItemsRequest carries the ordered default category label list
type SaveMealItemsRequest struct {
	MealItems []string `json:"mealItems" binding:"required"` // Ordered category labels
}

// GetMealItemsHandler returns the user's default category labels
func GetMealItemsHandler(settings *service.SettingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := settings.DefaultMealItems(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, "获取成功", items)
	}
}

// SaveMealItemsHandler stores the user's default category labels
func SaveMealItemsHandler(settings *service.SettingService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SaveMealItemsRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "默认项目列表不能为空"})
			return
		}
		if err := settings.SaveDefaultMealItems(c.Request.Context(), req.MealItems); err != nil {
			fail(c, err)
			return
		}
		ok(c, "保存成功", nil)
	}
}
