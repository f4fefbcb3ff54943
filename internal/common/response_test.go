package common

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRespondWithFailure(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithFailure(rec, NotFound("Course"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Course not found"}`, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
}

func TestRespondWithFailureHidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithFailure(rec, errors.New("dial tcp 10.0.0.5:5432: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestRespondWithMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithMessage(rec, http.StatusOK, "Course deleted successfully")
	assert.JSONEq(t, `{"message":"Course deleted successfully"}`, rec.Body.String())
}
