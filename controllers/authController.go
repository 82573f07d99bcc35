package controllers

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"backend/config"
	"backend/models"
	"backend/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	adminUsername   = "admin"
	defaultPassword = "admin123"
)

// findOrCreateAdmin returns the singleton credential, bootstrapping it with
// the default password on the very first login attempt.
func findOrCreateAdmin(ctx context.Context) (*models.AdminCredential, error) {
	var admin models.AdminCredential
	err := config.AdminCollection.FindOne(ctx, bson.M{"username": adminUsername}).Decode(&admin)
	if err == nil {
		return &admin, nil
	}
	if err != mongo.ErrNoDocuments {
		return nil, err
	}

	hashed, err := utils.HashPassword(defaultPassword)
	if err != nil {
		return nil, err
	}

	admin = models.AdminCredential{
		Username:  adminUsername,
		Password:  hashed,
		CreatedAt: time.Now(),
	}
	if _, err := config.AdminCollection.InsertOne(ctx, admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// Login checks the admin password and mints a 24h session token.
func Login(c *gin.Context) {
	var input struct {
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في الخادم الداخلي"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	admin, err := findOrCreateAdmin(ctx)
	if err != nil {
		log.Println("Login error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في الخادم الداخلي"})
		return
	}

	if err := utils.VerifyPassword(admin.Password, input.Password); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "كلمة المرور غير صحيحة"})
		return
	}

	token, err := utils.GenerateToken()
	if err != nil {
		log.Println("Error generating token:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في الخادم الداخلي"})
		return
	}

	now := time.Now()
	session := models.Session{
		Token:     token,
		CreatedAt: now,
		ExpiresAt: now.Add(utils.SessionTTL),
	}
	if _, err := config.SessionCollection.InsertOne(ctx, session); err != nil {
		log.Println("Error recording session:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "خطأ في الخادم الداخلي"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// UpdatePassword rotates the admin password. The dashboard sends the session
// token in the body rather than the Authorization header. Existing sessions
// stay valid until their natural expiry.
func UpdatePassword(c *gin.Context) {
	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
		Token           string `json:"token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := utils.FindSession(ctx, input.Token); err != nil {
		if err != mongo.ErrNoDocuments {
			log.Println("Password update error:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "جلسة غير صالحة"})
		return
	}

	var admin models.AdminCredential
	err := config.AdminCollection.FindOne(ctx, bson.M{"username": adminUsername}).Decode(&admin)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
			return
		}
		log.Println("Password update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	if err := utils.VerifyPassword(admin.Password, input.CurrentPassword); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "كلمة المرور الحالية غير صحيحة"})
		return
	}

	hashed, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		log.Println("Password update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	_, err = config.AdminCollection.UpdateOne(ctx,
		bson.M{"username": adminUsername},
		bson.M{"$set": bson.M{"password": hashed}},
	)
	if err != nil {
		log.Println("Password update error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		return
	}

	notifyPasswordChange()

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// notifyPasswordChange mails the site owner when a relay is configured.
// Delivery failure is logged and swallowed, same policy as lost tracking
// events.
func notifyPasswordChange() {
	to := os.Getenv("ADMIN_EMAIL")
	if to == "" {
		return
	}
	err := utils.SendEmail(to, "Admin password changed",
		"The dashboard admin password was changed at "+time.Now().Format(time.RFC1123)+".")
	if err != nil {
		log.Println("Error sending password change notification:", err)
	}
}
