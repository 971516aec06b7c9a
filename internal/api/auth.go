package api

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library

	"github.com/wangruoshui6/meal-accounting-backend/internal/auth"
	"github.com/wangruoshui6/meal-accounting-backend/internal/service"
)

// Request struct for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// userPayload is the outward user shape; the password hash never leaves the server
func userPayload(id uint, username, nickname string) gin.H {
	return gin.H{"id": id, "username": username, "nickname": nickname}
}

// bearerToken extracts the raw token from the Authorization header
func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(header, "Bearer "), true
}

// RegisterHandler creates a new user account
func RegisterHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "用户名和密码不能为空"})
			return
		}
		user, err := users.Register(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, "注册成功", gin.H{"user": userPayload(user.ID, user.Username, user.Nickname)})
	}
}

// LoginHandler authenticates a user and returns a session token
func LoginHandler(users *service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "用户名和密码不能为空"})
			return
		}
		token, user, err := users.Login(c.Request.Context(), req.Username, req.Password)
		if err == service.ErrBadCredentials {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
			return
		}
		if err != nil {
			fail(c, err)
			return
		}
		ok(c, "登录成功", gin.H{
			"token": token,
			"user":  userPayload(user.ID, user.Username, user.Nickname),
		})
	}
}

// LogoutHandler removes the presented token from the session cache
func LogoutHandler(authn *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, found := bearerToken(c)
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "无效的token格式"})
			return
		}
		if err := authn.Logout(c.Request.Context(), token); err != nil {
			logrus.WithField("error", err.Error()).Error("Logout failed")
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "登出失败"})
			return
		}
		ok(c, "登出成功", nil)
	}
}

// VerifyHandler checks the presented token and echoes the identity it carries
func VerifyHandler(authn *auth.Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, found := bearerToken(c)
		if !found {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "无效的token格式"})
			return
		}
		identity, err := authn.Verify(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "token无效或已过期"})
			return
		}
		ok(c, "token有效", gin.H{"user": gin.H{"id": identity.UserID, "username": identity.Username}})
	}
}
