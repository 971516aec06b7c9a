package api

import (
	"net/http" // HTTP status codes

	"github.com/gin-gonic/gin" // Gin web framework

	"github.com/wangruoshui6/meal-accounting-backend/internal/service"
)

// SaveDiaryRequest carries one note for one category label on one date
type SaveDiaryRequest struct {
	ItemName string `json:"itemName" binding:"required"` // Category label the note belongs to
	Content  string `json:"content" binding:"required"`  // Note body
	Date     string `json:"date" binding:"required"`     // ISO date (YYYY-MM-DD)
}

// SaveDiaryHandler creates or overwrites a diary note
func SaveDiaryHandler(diaries *service.DiaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SaveDiaryRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数不完整"})
			return
		}
		if err := diaries.SaveOrUpdate(c.Request.Context(), req.ItemName, req.Content, req.Date); err != nil {
			fail(c, err)
			return
		}
		ok(c, "保存成功", nil)
	}
}

// DiaryContentHandler returns one note's content; "" when absent
func DiaryContentHandler(diaries *service.DiaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemName := c.Query("itemName")
		date := c.Query("date")
		if itemName == "" || date == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数不完整"})
			return
		}
		content, err := diaries.Content(c.Request.Context(), itemName, date)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, "获取成功", content)
	}
}

// DiaryListHandler returns all notes for a date, ordered by item name
func DiaryListHandler(diaries *service.DiaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		date := c.Query("date")
		if date == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "日期不能为空"})
			return
		}
		list, err := diaries.ListByDate(c.Request.Context(), date)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, "获取成功", list)
	}
}

// DeleteDiaryHandler removes one note; absent is still a success
func DeleteDiaryHandler(diaries *service.DiaryService) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemName := c.Query("itemName")
		date := c.Query("date")
		if itemName == "" || date == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "参数不完整"})
			return
		}
		if err := diaries.Delete(c.Request.Context(), itemName, date); err != nil {
			fail(c, err)
			return
		}
		ok(c, "删除成功", nil)
	}
}
