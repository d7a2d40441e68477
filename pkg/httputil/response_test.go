package httputil

import (
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/romasdental/clinic-portal/pkg/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestRespondWithListEmpty(t *testing.T) {
	c, w := newContext()
	var items []string

	RespondWithList(c, items)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"items":[],"count":0}`, w.Body.String())
}

func TestRespondWithList(t *testing.T) {
	c, w := newContext()

	RespondWithList(c, []string{"a", "b"})

	assert.JSONEq(t, `{"success":true,"items":["a","b"],"count":2}`, w.Body.String())
}

func TestRespondWithValidationError(t *testing.T) {
	c, w := newContext()

	RespondWithError(c, errors.Validation(map[string]string{"mobile": "Please enter a valid 10-digit mobile number"}))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"validation failed","errors":{"mobile":"Please enter a valid 10-digit mobile number"}}`, w.Body.String())
}

func TestRespondWithPlainError(t *testing.T) {
	c, w := newContext()

	RespondWithError(c, stderrors.New("db exploded"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"internal server error"}`, w.Body.String())
}

func TestRespondWithStoreError(t *testing.T) {
	c, w := newContext()

	RespondWithError(c, errors.Store("save booking", stderrors.New("timeout")))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"failed to save booking"}`, w.Body.String())
}
