package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Path parameter conversion

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"github.com/wangruoshui6/meal-accounting-backend/internal/service"
)

// DeleteItemsRequest names the custom items to remove for a date
type DeleteItemsRequest struct {
	ItemNames []string `json:"itemNames" binding:"required"` // Names of custom items to delete
}

// SaveMealRecordHandler creates or fully replaces one day's record
func SaveMealRecordHandler(records *service.RecordService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.SaveRecordInput // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "请求数据无效"})
			return
		}
		record, err := records.SaveOrUpdate(c.Request.Context(), req)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, "保存成功", record)
	}
}

// GetMealRecordHandler returns the record for a date; data is null when absent
func GetMealRecordHandler(records *service.RecordService) gin.HandlerFunc {
	return func(c *gin.Context) {
		record, err := records.GetByDate(c.Request.Context(), c.Param("date"))
		if err != nil {
			fail(c, err)
			return
		}
		// Absent record is a success with a null payload, matching the client's expectations
		c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
	}
}

// DeleteMealRecordHandler removes the whole record for a date
func DeleteMealRecordHandler(records *service.RecordService) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := records.DeleteByDate(c.Request.Context(), c.Param("date"))
		if err != nil {
			fail(c, err)
			return
		}
		if !deleted {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "记录不存在"})
			return
		}
		ok(c, "删除成功", nil)
	}
}

// DeleteCustomItemsHandler removes named custom items from a date's record
func DeleteCustomItemsHandler(records *service.RecordService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req DeleteItemsRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "请求数据无效"})
			return
		}
		deleted, err := records.DeleteCustomItems(c.Request.Context(), c.Param("date"), req.ItemNames)
		if err != nil {
			fail(c, err)
			return
		}
		if !deleted {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "记录不存在"})
			return
		}
		ok(c, "删除成功", nil)
	}
}

// ClearAllDataHandler zeroes a date's record without deleting the row
func ClearAllDataHandler(records *service.RecordService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cleared, err := records.ClearAllData(c.Request.Context(), c.Param("date"))
		if err != nil {
			fail(c, err)
			return
		}
		if !cleared {
			c.JSON(http.StatusOK, gin.H{"success": false, "message": "记录不存在"})
			return
		}
		ok(c, "清空成功", nil)
	}
}

// RecordDatesHandler lists the dates within a month that have a record
func RecordDatesHandler(records *service.RecordService) gin.HandlerFunc {
	return func(c *gin.Context) {
		year, errY := strconv.Atoi(c.Param("year"))
		month, errM := strconv.Atoi(c.Param("month"))
		if errY != nil || errM != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "年月格式无效"})
			return
		}
		dates, err := records.RecordDates(c.Request.Context(), year, month)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, "获取成功", dates)
	}
}

// UserStatisticsHandler returns the lifetime summary for the current user
func UserStatisticsHandler(records *service.RecordService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := records.GetUserStatistics(c.Request.Context())
		if err != nil {
			fail(c, err)
			return
		}
		logrus.WithFields(logrus.Fields{
			"days":  stats.RecordedDays,
			"total": stats.TotalSpend.String(),
		}).Info("User statistics fetched")
		ok(c, "获取成功", stats)
	}
}

// StatisticsRangeHandler returns the records within an inclusive date range
func StatisticsRangeHandler(records *service.RecordService) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := c.Query("startDate")
		end := c.Query("endDate")
		if start == "" || end == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "开始日期和结束日期不能为空"})
			return
		}
		result, err := records.GetRecordsByDateRange(c.Request.Context(), start, end)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, "获取成功", result)
	}
}
