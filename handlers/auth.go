package handlers

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"tourly/database"
	"tourly/middleware"
	"tourly/models"
)

type SignupRequest struct {
	Name     string `form:"name" json:"name" binding:"required"`
	Email    string `form:"email" json:"email" binding:"required,email"`
	Password string `form:"password" json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func signToken(user models.User) (string, error) {
	claims := &middleware.Claims{
		UserID:  user.ID.Hex(),
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		CreatedAt: time.Now().Unix(),
		UpdatedAt: time.Now().Unix(),
	}

	// Optional avatar upload
	if file, err := c.FormFile("profile"); err == nil {
		img, upErr := uploadImage(ctx, file, "tourly/avatars")
		if upErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload profile image"})
			return
		}
		user.Profile = &img
	}

	// The unique index on email turns a concurrent duplicate signup into a
	// duplicate-key error here, not a racy pre-check
	if _, err := database.Users.InsertOne(ctx, user); err != nil {
		if user.Profile != nil {
			destroyImage(ctx, user.Profile.PublicID)
		}
		if mongo.IsDuplicateKeyError(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "User with that email already exists"})
			return
		}
		writeStorageError(c, err, "")
		return
	}

	token, err := signToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully",
		"token":   token,
		"user":    user,
	})
}

func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	err := database.Users.FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	token, err := signToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// GetProfile resolves the caller's own user document from the token identity.
func GetProfile(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := database.Users.FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
		writeStorageError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, user)
}

func GetUser(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := database.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		writeStorageError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, user)
}

type UpdateUserRequest struct {
	Name  string `form:"name" json:"name"`
	Email string `form:"email" json:"email"`
}

func UpdateUser(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	callerID, isAdmin, ok := currentUser(c)
	if !ok {
		return
	}
	if callerID != id && !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only update your own profile"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := database.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		writeStorageError(c, err, "User not found")
		return
	}

	update := bson.M{"updatedAt": time.Now().Unix()}
	if req.Name != "" {
		update["name"] = req.Name
	}
	if req.Email != "" {
		update["email"] = req.Email
	}

	if file, err := c.FormFile("profile"); err == nil {
		if user.Profile != nil {
			destroyImage(ctx, user.Profile.PublicID)
		}
		img, upErr := uploadImage(ctx, file, "tourly/avatars")
		if upErr != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload profile image"})
			return
		}
		update["profile"] = img
	}

	var updated models.User
	err := database.Users.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		mongoAfter(),
	).Decode(&updated)
	if err != nil {
		writeStorageError(c, err, "User not found")
		return
	}

	c.JSON(http.StatusOK, updated)
}

func DeleteUser(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	callerID, isAdmin, ok := currentUser(c)
	if !ok {
		return
	}
	if callerID != id && !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "You can only delete your own account"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var user models.User
	if err := database.Users.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		writeStorageError(c, err, "User not found")
		return
	}

	if user.Profile != nil {
		destroyImage(ctx, user.Profile.PublicID)
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func GetAllUsers(c *gin.Context) {
	_, isAdmin, ok := currentUser(c)
	if !ok {
		return
	}
	if !isAdmin {
		c.JSON(http.StatusForbidden, gin.H{"message": "Access denied. Admin privileges required"})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := database.Users.Find(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

func GetUserCount(c *gin.Context) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := database.Users.CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate reset token"})
		return
	}
	token := hex.EncodeToString(buf)

	res, err := database.Users.UpdateOne(ctx,
		bson.M{"email": req.Email},
		bson.M{"$set": bson.M{
			"resetToken":          token,
			"resetTokenExpiresAt": time.Now().Add(time.Hour).Unix(),
		}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	resetLink := appConfig.FrontendURL + "/reset-password/" + token
	go func() {
		if err := mailSender.SendPasswordReset(req.Email, resetLink); err != nil {
			log.Printf("Failed to send reset email to %s: %v", req.Email, err)
		}
	}()

	c.JSON(http.StatusOK, gin.H{"message": "Reset link sent to email."})
}

func ResetPassword(c *gin.Context) {
	var req struct {
		Token       string `json:"token" binding:"required"`
		NewPassword string `json:"newPassword" binding:"required,min=6"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	res, err := database.Users.UpdateOne(ctx,
		bson.M{
			"resetToken":          req.Token,
			"resetTokenExpiresAt": bson.M{"$gt": time.Now().Unix()},
		},
		bson.M{
			"$set":   bson.M{"password": string(hashed), "updatedAt": time.Now().Unix()},
			"$unset": bson.M{"resetToken": "", "resetTokenExpiresAt": ""},
		},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid or expired token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully."})
}
