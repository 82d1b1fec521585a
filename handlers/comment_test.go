package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func commentContext(t *testing.T, body string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/posts/x/comment", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestBindCommentBodyAcceptsBody(t *testing.T) {
	c, _ := commentContext(t, `{"body":"great trip"}`)

	body, ok := bindCommentBody(c)
	assert.True(t, ok)
	assert.Equal(t, "great trip", body)
}

func TestBindCommentBodyAcceptsLegacyKeys(t *testing.T) {
	for _, payload := range []string{
		`{"comment":"legacy comment key"}`,
		`{"reply":"legacy reply key"}`,
		`{"newComment":"legacy edit key"}`,
	} {
		c, _ := commentContext(t, payload)
		body, ok := bindCommentBody(c)
		assert.True(t, ok, payload)
		assert.NotEmpty(t, body, payload)
	}
}

func TestBindCommentBodyRejectsEmpty(t *testing.T) {
	c, w := commentContext(t, `{}`)

	_, ok := bindCommentBody(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Comment body is required")
}

func TestBindCommentBodyRejectsMalformedJSON(t *testing.T) {
	c, w := commentContext(t, `{`)

	_, ok := bindCommentBody(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommentRequestPrefersFirstNonEmpty(t *testing.T) {
	req := CommentRequest{Body: "body wins", Comment: "comment loses"}
	assert.Equal(t, "body wins", req.text())
}
