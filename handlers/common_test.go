package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func testContext(t *testing.T, method, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, nil)
	return c, w
}

func TestPageParamsDefaults(t *testing.T) {
	c, _ := testContext(t, "GET", "/posts")

	page, limit, skip := pageParams(c)
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(10), limit)
	assert.Equal(t, int64(0), skip)
}

func TestPageParamsSkipWindow(t *testing.T) {
	c, _ := testContext(t, "GET", "/posts?page=2&limit=10")

	page, limit, skip := pageParams(c)
	assert.Equal(t, int64(2), page)
	assert.Equal(t, int64(10), limit)
	// Page 2 with limit 10 covers items ranked 11-20
	assert.Equal(t, int64(10), skip)
}

func TestPageParamsRejectsGarbage(t *testing.T) {
	c, _ := testContext(t, "GET", "/posts?page=-3&limit=abc")

	page, limit, skip := pageParams(c)
	assert.Equal(t, int64(1), page)
	assert.Equal(t, int64(10), limit)
	assert.Equal(t, int64(0), skip)
}

func TestWriteStorageErrorNotFound(t *testing.T) {
	c, w := testContext(t, "GET", "/posts/x")

	writeStorageError(c, mongo.ErrNoDocuments, "Post not found")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Post not found")
}

// A unique-index violation surfaces as a write exception with code 11000 and
// must come back as a conflict, not an internal error.
func TestWriteStorageErrorDuplicateKey(t *testing.T) {
	c, w := testContext(t, "POST", "/auth/signup")

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	writeStorageError(c, dup, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, int64(3), totalPages(25, 10))
	assert.Equal(t, int64(1), totalPages(10, 10))
	assert.Equal(t, int64(0), totalPages(0, 10))
	assert.Equal(t, int64(1), totalPages(1, 10))
	assert.Equal(t, int64(0), totalPages(5, 0))
}
