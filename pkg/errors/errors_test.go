package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorStatusCode(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{NotFound("booking", nil), http.StatusNotFound},
		{BadRequest("bad", nil), http.StatusBadRequest},
		{Validation(map[string]string{"name": "Name is required"}), http.StatusBadRequest},
		{Unauthorized(nil), http.StatusUnauthorized},
		{Store("save booking", stderrors.New("conn reset")), http.StatusInternalServerError},
		{Internal(stderrors.New("boom")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.StatusCode(), tc.err.Message)
	}
}

func TestStoreKeepsCauseOutOfMessage(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := Store("save booking", cause)

	assert.Equal(t, "failed to save booking", err.Message)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestConstructorsKeepCause(t *testing.T) {
	cause := stderrors.New("sql: no rows")

	nf := NotFound("gallery image", cause)
	assert.Equal(t, ErrNotFound, nf.Code)
	assert.Equal(t, "gallery image not found: sql: no rows", nf.Error())
	assert.ErrorIs(t, nf, cause)

	br := BadRequest("faqs do not take images", nil)
	assert.Equal(t, ErrBadRequest, br.Code)
	assert.Equal(t, "faqs do not take images", br.Error())

	in := Internal(cause)
	assert.Equal(t, ErrInternal, in.Code)
	assert.Equal(t, "internal server error", in.Message)
}

func TestCodeOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", NotFound("blog", nil))

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "blog not found", appErr.Message)
	assert.True(t, Is(wrapped, ErrNotFound))
	assert.Equal(t, ErrInternal, CodeOf(stderrors.New("plain")))
	assert.False(t, Is(nil, ErrNotFound))
}
