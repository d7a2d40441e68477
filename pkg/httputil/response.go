package httputil

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/romasdental/clinic-portal/pkg/errors"
)

// Response wraps all API responses
type Response struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Links   interface{}       `json:"links,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// RespondWithSuccess sends a success response
func RespondWithSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Success: true,
		Data:    data,
	})
}

// RespondWithLinks sends data together with outbound notification links
func RespondWithLinks(c *gin.Context, status int, data interface{}, links interface{}) {
	c.JSON(status, Response{
		Success: true,
		Data:    data,
		Links:   links,
	})
}

// RespondWithMessage sends a success response carrying only a message
func RespondWithMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: message,
	})
}

// RespondWithList sends {success, items, count}. A nil slice is sent as [].
func RespondWithList(c *gin.Context, items interface{}) {
	count := 0
	v := reflect.ValueOf(items)
	if v.Kind() == reflect.Slice {
		count = v.Len()
		if v.IsNil() {
			items = []struct{}{}
		}
	}

	c.JSON(http.StatusOK, listResponse{
		Success: true,
		Items:   items,
		Count:   count,
	})
}

// listResponse keeps items and count present even when empty.
type listResponse struct {
	Success bool        `json:"success"`
	Items   interface{} `json:"items"`
	Count   int         `json:"count"`
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := errors.As(err)
	if !ok {
		appErr = errors.Internal(err)
	}

	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Str("request_id", c.GetString("request_id")).
			Msg("Request failed")
	}

	c.JSON(status, Response{
		Success: false,
		Message: appErr.Message,
		Errors:  appErr.Fields,
	})
}
