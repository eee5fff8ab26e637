package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondErrorWithCode(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondErrorWithCode(rec, http.StatusNotFound, ErrCodeNotFound, "Building not found", map[string]string{"id": "x"}, errors.New("no rows"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeNotFound, body.Code)
	assert.Equal(t, "Building not found", body.Message)
	assert.NotNil(t, body.Details)
}

func TestHandleAppError(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleAppError(rec, NewAppError(http.StatusUnprocessableEntity, ErrCodeExportFailed, "Export failed", errors.New("empty")))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = httptest.NewRecorder()
	HandleAppError(rec, errors.New("something odd"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrCodeInternal, body.Code)
}

func TestRespondWithAttachment(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondWithAttachment(rec, "Storgatan12.zip", ContentTypeZip, []byte("PK"))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ContentTypeZip, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="Storgatan12.zip"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "2", rec.Header().Get("Content-Length"))
	assert.Equal(t, "PK", rec.Body.String())
}
