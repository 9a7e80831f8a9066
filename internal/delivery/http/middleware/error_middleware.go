package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"espacestage-backend/internal/delivery/http/response"
	"espacestage-backend/pkg/apperror"
	"espacestage-backend/pkg/logger"
)

// ErrorHandler translates errors appended to the gin context into the JSON
// envelope. Internal error details go to the server log with the request ID;
// they reach the response body only in development mode.
func ErrorHandler(debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 {
			err := c.Errors.Last().Err
			var appErr *apperror.AppError
			if errors.As(err, &appErr) {
				var detail interface{}
				if appErr.Code >= 500 {
					cause := error(appErr)
					if appErr.Err != nil {
						cause = appErr.Err
					}
					logInternal(c, cause)
					if debug {
						detail = cause.Error()
					}
				}
				response.Error(c, appErr.Code, appErr.Message, detail)
				return
			}

			logInternal(c, err)
			var detail interface{}
			if debug {
				detail = err.Error()
			}
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", detail)
		}
	}
}

func logInternal(c *gin.Context, err error) {
	reqID, _ := c.Get("RequestID")
	idStr, _ := reqID.(string)
	logger.Log.Error("request failed",
		"request_id", idStr,
		"method", c.Request.Method,
		"path", c.FullPath(),
		"error", err.Error(),
	)
}
