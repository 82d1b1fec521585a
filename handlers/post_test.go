package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func postRouter(isAdmin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(identityStub(primitive.NewObjectID().Hex(), isAdmin))
	r.POST("/posts", CreatePost)
	r.GET("/posts/:postId", GetPostByID)
	return r
}

func postForm(destination string) url.Values {
	return url.Values{
		"title":       {"Rome Tour"},
		"content":     {"A week in the ancient city"},
		"price":       {"500"},
		"destination": {destination},
		"postDate":    {"2026-10-01"},
	}
}

func TestCreatePostRequiresAdmin(t *testing.T) {
	r := postRouter(false)

	req := httptest.NewRequest("POST", "/posts", strings.NewReader(postForm("Egypt").Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admin privileges required")
}

func TestCreatePostRejectsUnknownDestination(t *testing.T) {
	r := postRouter(true)

	// "Italy" is outside the closed destination set
	req := httptest.NewRequest("POST", "/posts", strings.NewReader(postForm("Italy").Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid destination")
}

func TestCreatePostRequiresFields(t *testing.T) {
	r := postRouter(true)

	form := postForm("Egypt")
	form.Del("title")
	req := httptest.NewRequest("POST", "/posts", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPostByIDRejectsMalformedID(t *testing.T) {
	r := postRouter(false)

	req := httptest.NewRequest("GET", "/posts/not-an-id", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2026-10-01")
	assert.NoError(t, err)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = parseDate("2026-10-01T12:30:00Z")
	assert.NoError(t, err)
	assert.Equal(t, 12, d.Hour())

	_, err = parseDate("10/01/2026")
	assert.Error(t, err)
}
