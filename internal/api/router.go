package api

import (
	"github.com/gin-gonic/gin" // Gin web framework

	"github.com/wangruoshui6/meal-accounting-backend/internal/auth"
	"github.com/wangruoshui6/meal-accounting-backend/internal/middleware"
	"github.com/wangruoshui6/meal-accounting-backend/internal/service"
)

// Deps bundles everything the HTTP surface needs
type Deps struct {
	Authn    *auth.Authenticator     // Token issuer/verifier
	Users    *service.UserService    // Registration and login
	Records  *service.RecordService  // Expense record engine
	Diaries  *service.DiaryService   // Diary notes
	Settings *service.SettingService // Per-user settings
}

// RegisterRoutes wires all endpoints onto the router. Auth endpoints are
// public; everything else sits behind the JWT middleware.
func RegisterRoutes(r *gin.Engine, d Deps) {
	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", RegisterHandler(d.Users)) // Registration endpoint
	authGroup.POST("/login", LoginHandler(d.Users))       // Login endpoint
	authGroup.POST("/logout", LogoutHandler(d.Authn))     // Logout endpoint
	authGroup.POST("/verify", VerifyHandler(d.Authn))     // Token verification endpoint

	// Meal record routes (protected by JWT)
	mealGroup := r.Group("/api/meal")
	mealGroup.Use(middleware.JWTAuthMiddleware(d.Authn))
	mealGroup.POST("/save", SaveMealRecordHandler(d.Records))                     // Upsert one day's record
	mealGroup.GET("/get/:date", GetMealRecordHandler(d.Records))                  // Fetch one day's record
	mealGroup.DELETE("/delete/:date", DeleteMealRecordHandler(d.Records))         // Delete one day's record
	mealGroup.POST("/delete-items/:date", DeleteCustomItemsHandler(d.Records))    // Prune custom items
	mealGroup.POST("/clear/:date", ClearAllDataHandler(d.Records))                // Zero out one day's record
	mealGroup.GET("/record-dates/:year/:month", RecordDatesHandler(d.Records))    // Calendar markers
	mealGroup.GET("/user-statistics", UserStatisticsHandler(d.Records))           // Lifetime summary
	mealGroup.GET("/statistics", StatisticsRangeHandler(d.Records))               // Date-range records

	// Diary routes (protected by JWT)
	diaryGroup := r.Group("/api/diary")
	diaryGroup.Use(middleware.JWTAuthMiddleware(d.Authn))
	diaryGroup.POST("/save", SaveDiaryHandler(d.Diaries))      // Upsert a note
	diaryGroup.GET("/content", DiaryContentHandler(d.Diaries)) // Fetch one note
	diaryGroup.GET("/list", DiaryListHandler(d.Diaries))       // List a date's notes
	diaryGroup.DELETE("/delete", DeleteDiaryHandler(d.Diaries)) // Remove a note

	// Settings routes (protected by JWT)
	settingGroup := r.Group("/api/setting")
	settingGroup.Use(middleware.JWTAuthMiddleware(d.Authn))
	settingGroup.GET("/meal-items", GetMealItemsHandler(d.Settings))   // Default category labels
	settingGroup.POST("/meal-items", SaveMealItemsHandler(d.Settings)) // Save default category labels
}
