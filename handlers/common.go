package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"tourly/config"
	"tourly/mailer"
)

// Shared state wired from main at startup.
var (
	appConfig  config.Config
	mailSender *mailer.Mailer
)

func SetConfig(cfg config.Config) {
	appConfig = cfg
}

func SetMailer(m *mailer.Mailer) {
	mailSender = m
}

// Pagination is the page summary returned next to any paginated listing.
type Pagination struct {
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int64 `json:"currentPage"`
}

// pageParams reads ?page= and ?limit= with the same defaults on every listing.
func pageParams(c *gin.Context) (page, limit, skip int64) {
	page, _ = strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)
	if limit < 1 {
		limit = 10
	}
	return page, limit, (page - 1) * limit
}

func totalPages(total, limit int64) int64 {
	if limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}

// objectIDParam parses a path parameter as an ObjectID, answering 400 itself
// when the value is malformed.
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return primitive.NilObjectID, false
	}
	return id, true
}

// currentUser returns the identity the auth middleware resolved.
func currentUser(c *gin.Context) (primitive.ObjectID, bool, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user ID"})
		return primitive.NilObjectID, false, false
	}
	return userID, c.GetBool("isAdmin"), true
}

// mongoAfter asks FindOneAndUpdate to return the post-update document.
func mongoAfter() *options.FindOneAndUpdateOptions {
	return options.FindOneAndUpdate().SetReturnDocument(options.After)
}

// writeStorageError maps storage failures onto the error taxonomy: missing
// document, duplicate key, everything else internal.
func writeStorageError(c *gin.Context, err error, notFoundMsg string) {
	switch {
	case err == mongo.ErrNoDocuments:
		c.JSON(http.StatusNotFound, gin.H{"message": notFoundMsg})
	case mongo.IsDuplicateKeyError(err):
		c.JSON(http.StatusConflict, gin.H{"error": "Duplicate value error"})
	default:
		log.Printf("storage error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
	}
}
