package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"trackly-server/config"
	"trackly-server/models"
	"trackly-server/service"
)

type credentials struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "username and password required"})
		return
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	user := models.User{
		Username:  req.Username,
		Password:  string(hashedPassword),
		Nickname:  req.Username,
		CreatedAt: time.Now(),
	}
	if err := config.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "username already taken"})
		return
	}

	token, _ := service.GenerateToken(user.ID)
	c.JSON(http.StatusOK, gin.H{
		"status_code": 0,
		"user_id":     user.ID,
		"token":       token,
	})
}

func Login(c *gin.Context) {
	var req credentials
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "username and password required"})
		return
	}

	var user models.User
	if err := config.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "user not found"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "wrong password"})
		return
	}

	token, _ := service.GenerateToken(user.ID)
	c.JSON(http.StatusOK, gin.H{
		"status_code": 0,
		"user_id":     user.ID,
		"token":       token,
	})
}

// GetUserInfo returns the authenticated user's profile.
func GetUserInfo(c *gin.Context) {
	userID := service.CurrentUserID(c)

	var user models.User
	if err := config.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusOK, gin.H{"status_code": 1, "status_msg": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status_code": 0,
		"user":        user,
	})
}
