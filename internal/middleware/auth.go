package middleware

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-dashboard/internal/model"
	"github.com/ridwanfathin/invoice-dashboard/internal/repository"
	"github.com/ridwanfathin/invoice-dashboard/internal/service"
)

const (
	// SessionCookie holds the signed session token
	SessionCookie = "session"

	dashboardPath = "/dashboard"
	loginPath     = "/login"
)

// Authorized guards the dashboard. Pages under /dashboard require a
// session, otherwise the caller is sent to the login page with a
// callbackUrl. Signed-in users hitting any other guarded page land on the
// dashboard. A session whose user no longer exists counts as signed out.
func Authorized(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		loggedIn := false
		if claims, err := authService.ValidateSessionToken(sessionToken(c)); err == nil {
			user, err := authService.GetUserByID(c.Request.Context(), claims.UserID)
			switch {
			case err == nil:
				loggedIn = true
				// Set user information in context for handlers to use
				c.Set("userID", user.ID)
				c.Set("userEmail", user.Email)
			case !errors.Is(err, repository.ErrUserNotFound):
				c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{
					Status:  http.StatusText(http.StatusInternalServerError),
					Message: "Something went wrong.",
				})
				return
			}
		}

		path := c.Request.URL.Path
		onDashboard := path == dashboardPath || strings.HasPrefix(path, dashboardPath+"/")

		switch {
		case onDashboard && !loggedIn:
			c.Redirect(http.StatusSeeOther, loginPath+"?callbackUrl="+url.QueryEscape(c.Request.URL.RequestURI()))
			c.Abort()
		case !onDashboard && loggedIn:
			c.Redirect(http.StatusSeeOther, dashboardPath)
			c.Abort()
		default:
			c.Next()
		}
	}
}

// sessionToken reads the session cookie, falling back to a Bearer header
func sessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	// Check if it's a Bearer token
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
