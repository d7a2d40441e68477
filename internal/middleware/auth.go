package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/romasdental/clinic-portal/internal/model"
	apperrors "github.com/romasdental/clinic-portal/pkg/errors"
	"github.com/romasdental/clinic-portal/pkg/httputil"
)

const ContextSession = "admin_session"

// SessionValidator resolves a session id to a live session.
type SessionValidator interface {
	Validate(ctx context.Context, id string) (*model.Session, error)
}

// RequireAdmin admits requests carrying "Authorization: Bearer <session id>"
// for a live session.
func RequireAdmin(sessions SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := BearerToken(c.GetHeader("Authorization"))
		if !ok {
			httputil.RespondWithError(c, apperrors.Unauthorized(model.ErrSessionNotFound))
			c.Abort()
			return
		}

		session, err := sessions.Validate(c.Request.Context(), id)
		if err != nil {
			httputil.RespondWithError(c, err)
			c.Abort()
			return
		}

		c.Set(ContextSession, session)
		c.Next()
	}
}

// BearerToken extracts the token of a Bearer authorization header.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// SessionFrom returns the session set by RequireAdmin.
func SessionFrom(c *gin.Context) (*model.Session, bool) {
	v, ok := c.Get(ContextSession)
	if !ok {
		return nil, false
	}
	session, ok := v.(*model.Session)
	return session, ok
}
