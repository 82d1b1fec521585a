package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// identityStub injects the context the JWT middleware would have resolved.
func identityStub(userID string, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", userID)
		c.Set("isAdmin", isAdmin)
		c.Next()
	}
}

func bookingRouter(isAdmin bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(identityStub(primitive.NewObjectID().Hex(), isAdmin))
	r.POST("/booking/:id", CreateBooking)
	r.PUT("/booking/:id", UpdateBooking)
	r.PATCH("/booking/:id/approve", ApproveBooking)
	return r
}

func TestCreateBookingRequiresAllFields(t *testing.T) {
	r := bookingRouter(false)

	body := `{"date":"2026-10-01","name":"Jordan"}`
	req := httptest.NewRequest("POST", "/booking/"+primitive.NewObjectID().Hex(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "All fields are required.")
}

func TestCreateBookingRejectsBadDate(t *testing.T) {
	r := bookingRouter(false)

	body := `{"date":"next tuesday","name":"Jordan","email":"j@example.com","phone":"123","details":"2 rooms","tripSite":"Giza"}`
	req := httptest.NewRequest("POST", "/booking/"+primitive.NewObjectID().Hex(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid date")
}

func TestCreateBookingRejectsMalformedPostID(t *testing.T) {
	r := bookingRouter(false)

	req := httptest.NewRequest("POST", "/booking/not-an-id", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestApproveBookingRequiresAdmin(t *testing.T) {
	r := bookingRouter(false)

	req := httptest.NewRequest("PATCH", "/booking/"+primitive.NewObjectID().Hex()+"/approve", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admin privileges required")
}

func TestUpdateBookingRefusesStatusPatch(t *testing.T) {
	r := bookingRouter(true)

	body := `{"status":"approved"}`
	req := httptest.NewRequest("PUT", "/booking/"+primitive.NewObjectID().Hex(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Status cannot be updated directly")
}
