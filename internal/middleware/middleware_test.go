package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/romasdental/clinic-portal/internal/config"
	"github.com/romasdental/clinic-portal/internal/model"
	apperrors "github.com/romasdental/clinic-portal/pkg/errors"
)

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	return r
}

func get(r http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitIsPerClient(t *testing.T) {
	rl := NewRateLimiter(RateLimiterConfig{Rate: rate.Every(time.Hour), Burst: 1})
	r := newEngine(rl.RateLimit())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	first := map[string]string{"X-Forwarded-For": "10.0.0.1"}
	second := map[string]string{"X-Forwarded-For": "10.0.0.2"}

	assert.Equal(t, http.StatusOK, get(r, "/", first).Code)
	w := get(r, "/", first)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Too many requests")
	assert.Equal(t, http.StatusOK, get(r, "/", second).Code)
}

func TestTimeoutRespondsWhenHandlerIsSilent(t *testing.T) {
	r := newEngine(Timeout(10 * time.Millisecond))
	r.GET("/", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})

	w := get(r, "/", nil)
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestTimeoutLeavesWrittenResponses(t *testing.T) {
	r := newEngine(Timeout(time.Second))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusAccepted) })

	assert.Equal(t, http.StatusAccepted, get(r, "/", nil).Code)
}

func TestSizeLimitRejectsDeclaredLength(t *testing.T) {
	r := newEngine(SizeLimit(8))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("this is far too long"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	cfg := NewCORSConfig(config.CORSConfig{AllowOrigins: []string{"https://romasdentalcare.com"}, MaxAge: 600})
	r := newEngine(CORS(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://romasdentalcare.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://romasdentalcare.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "600", w.Header().Get("Access-Control-Max-Age"))
	assert.Equal(t, "Origin", w.Header().Get("Vary"))
}

func TestCORSRejectsUnknownOriginPreflight(t *testing.T) {
	cfg := NewCORSConfig(config.CORSConfig{AllowOrigins: []string{"https://romasdentalcare.com"}})
	r := newEngine(CORS(cfg))

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestIDReusesHeader(t *testing.T) {
	r := newEngine(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(ContextRequestID)) })

	w := get(r, "/", map[string]string{HeaderXRequestID: "abc-123"})
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(HeaderXRequestID))

	w = get(r, "/", nil)
	assert.Len(t, w.Header().Get(HeaderXRequestID), 36)
}

func TestRecoveryReturnsJSON(t *testing.T) {
	r := newEngine(Recovery())
	r.GET("/", func(c *gin.Context) { panic("boom") })

	w := get(r, "/", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"success":false,"message":"Internal server error"}`, w.Body.String())
}

func TestErrorHandlerRendersAttachedError(t *testing.T) {
	r := newEngine(ErrorHandler())
	r.GET("/", func(c *gin.Context) {
		_ = c.Error(apperrors.NotFound("booking", errors.New("missing")))
	})

	assert.Equal(t, http.StatusNotFound, get(r, "/", nil).Code)
}

type sessions map[string]*model.Session

func (s sessions) Validate(_ context.Context, id string) (*model.Session, error) {
	if session, ok := s[id]; ok {
		return session, nil
	}
	return nil, apperrors.Unauthorized(model.ErrSessionNotFound)
}

func TestRequireAdmin(t *testing.T) {
	store := sessions{"s-1": {ID: "s-1", Email: "admin@example.com"}}
	r := newEngine(RequireAdmin(store))
	r.GET("/", func(c *gin.Context) {
		session, ok := SessionFrom(c)
		require.True(t, ok)
		c.String(http.StatusOK, session.Email)
	})

	assert.Equal(t, http.StatusUnauthorized, get(r, "/", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/", map[string]string{"Authorization": "Basic s-1"}).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/", map[string]string{"Authorization": "Bearer s-2"}).Code)

	w := get(r, "/", map[string]string{"Authorization": "bearer  s-1 "})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin@example.com", w.Body.String())
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"BEARER abc", "abc", true},
		{"Bearer ", "", false},
		{"Token abc", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		token, ok := BearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.token, token, tt.header)
	}
}
