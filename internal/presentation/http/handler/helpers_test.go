package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sangkips/billbook-api/internal/presentation/http/dto/request"
	"github.com/sangkips/billbook-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	request.RegisterValidators()
}

func TestBindErrorTypeMismatch(t *testing.T) {
	var req request.CreateProductRequest
	err := json.Unmarshal([]byte(`{"name":"Rice","price":"50"}`), &req)
	require.Error(t, err)

	appErr := bindError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Code)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "price", appErr.Errors[0].Field)
	assert.Equal(t, "price must be a number", appErr.Errors[0].Message)
}

func TestBindErrorValidation(t *testing.T) {
	price := 10.0
	err := binding.Validator.ValidateStruct(&request.CreateProductRequest{Name: " ", Price: &price})
	require.Error(t, err)

	appErr := bindError(err)
	assert.Equal(t, apperror.KindValidation, appErr.Kind)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "name", appErr.Errors[0].Field)
	assert.Equal(t, "name is required and must be a non-empty string", appErr.Errors[0].Message)
}

func TestBindErrorEmptyBody(t *testing.T) {
	appErr := bindError(io.EOF)
	assert.Equal(t, "Request body is required", appErr.Message)
}

func TestParseID(t *testing.T) {
	r := gin.New()
	r.GET("/items/:id", func(c *gin.Context) {
		id, ok := parseID(c)
		if !ok {
			return
		}
		c.String(http.StatusOK, id.String())
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "Invalid ID format"))

	const id = "7f1b7a3e-6d9c-4f7e-9a51-2a3c1f0b9d44"
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, w.Body.String())
}
