package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-dashboard/internal/middleware"
	"github.com/ridwanfathin/invoice-dashboard/internal/service"
	"go.uber.org/zap"
)

const dashboardHome = "/dashboard"

// AuthHandler handles sign-in and sign-out
type AuthHandler struct {
	authService   service.AuthService
	log           *zap.Logger
	secureCookies bool
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, log *zap.Logger, secureCookies bool) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		log:           log,
		secureCookies: secureCookies,
	}
}

// LoginRequest represents the credentials form
type LoginRequest struct {
	Email       string `json:"email" form:"email" binding:"required,email"`
	Password    string `json:"password" form:"password" binding:"required,min=6"`
	CallbackURL string `json:"callbackUrl" form:"callbackUrl"`
}

// LoginPageResponse is the data the login page renders with
type LoginPageResponse struct {
	CallbackURL string `json:"callbackUrl"`
}

// RegisterRoutes registers the pages guarded by the session middleware and
// the logout route, which is reachable either way.
func (h *AuthHandler) RegisterRoutes(router *gin.Engine, guarded *gin.RouterGroup) {
	guarded.GET("/", h.Home)
	guarded.GET("/login", h.LoginPage)
	guarded.POST("/login", h.Login)
	router.POST("/logout", h.Logout)
}

// Home is the public landing page
// @Summary Landing page
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string "Welcome message"
// @Success 303 "Signed-in users go to /dashboard"
// @Router / [get]
func (h *AuthHandler) Home(c *gin.Context) {
	respondOK(c, gin.H{"message": "Welcome to Acme.", "login": "/login"})
}

// LoginPage returns the data for the login form
// @Summary Login page
// @Tags auth
// @Produce json
// @Param callbackUrl query string false "Where to go after signing in"
// @Success 200 {object} LoginPageResponse "Login form data"
// @Router /login [get]
func (h *AuthHandler) LoginPage(c *gin.Context) {
	respondOK(c, LoginPageResponse{
		CallbackURL: localRedirect(c.Query("callbackUrl"), dashboardHome),
	})
}

// Login signs a user in with email and password
// @Summary Login with email and password
// @Description Sets the session cookie and redirects to the callback URL
// @Tags auth
// @Accept x-www-form-urlencoded,json
// @Produce json
// @Param email formData string true "Email"
// @Param password formData string true "Password, at least 6 characters"
// @Param callbackUrl formData string false "Where to go after signing in"
// @Success 303 "Redirect to the callback URL"
// @Failure 401 {object} model.ErrorResponse "Invalid credentials"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		respondUnauthorized(c, ErrInvalidCredentials)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondUnauthorized(c, ErrInvalidCredentials)
			return
		}
		h.log.Error("Login failed", zap.Error(err))
		respondInternalServerError(c, "Something went wrong.")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, session.Token, int(session.ExpiresIn), "/", "", h.secureCookies, true)
	c.Redirect(StatusSeeOther, localRedirect(req.CallbackURL, dashboardHome))
}

// Logout clears the session cookie
// @Summary Logout
// @Tags auth
// @Success 303 "Redirect to /"
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookies, true)
	c.Redirect(StatusSeeOther, "/")
}
