package guard

import (
	"strings"

	"go-absensi/internal/shared/apperror"
	"go-absensi/internal/shared/contextutil"
	"go-absensi/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// TokenFromRequest membaca kredensial dari Authorization header
// atau cookie access_token (web client).
func TokenFromRequest(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found {
		tokenString = ""
	}

	if tokenString == "" {
		if cookie, err := c.Cookie("access_token"); err == nil {
			tokenString = cookie
		}
	}

	return tokenString
}

// Require adalah middleware gin yang menjalankan Guard.Authorize untuk
// gate yang diminta dan menaruh identitas hasil resolve di context.
func Require(g *Guard, gate Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := g.Authorize(c.Request.Context(), TokenFromRequest(c), gate)
		if err != nil {
			httpErr := apperror.ToHTTP(err)
			response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
			c.Abort()
			return
		}

		c.Set("user_id", id.UserID)
		c.Set("role", id.Role)
		if id.Employee != nil {
			c.Set("employee_id", id.Employee.ID)
			c.Set("employee_name", id.Employee.FullName)
		}

		ctx := contextutil.WithUserID(c.Request.Context(), id.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
