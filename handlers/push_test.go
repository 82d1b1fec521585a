package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

// A dead endpoint comes back from the push service as a 404/410 response with
// a nil error, so the prune decision must key off the status code alone.
func TestPushEndpointGone(t *testing.T) {
	assert.True(t, pushEndpointGone(http.StatusGone))
	assert.True(t, pushEndpointGone(http.StatusNotFound))

	assert.False(t, pushEndpointGone(http.StatusOK))
	assert.False(t, pushEndpointGone(http.StatusCreated))
	assert.False(t, pushEndpointGone(http.StatusBadRequest))
	assert.False(t, pushEndpointGone(http.StatusInternalServerError))
}
