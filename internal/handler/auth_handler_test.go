package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-dashboard/internal/domain"
	"github.com/ridwanfathin/invoice-dashboard/internal/middleware"
	"github.com/ridwanfathin/invoice-dashboard/internal/service"
	"github.com/ridwanfathin/invoice-dashboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newAuthRouter(t *testing.T) *gin.Engine {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	require.NoError(t, err)
	users := testutil.NewUserRepository(&domain.User{
		ID: "410544b2-4001-4271-9855-fec4b6a6442a", Name: "User", Email: "user@nextmail.com", PasswordHash: string(hash),
	})
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:   users,
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
	})

	router := gin.New()
	guarded := router.Group("/", middleware.Authorized(authService))
	NewAuthHandler(authService, zap.NewNop(), false).RegisterRoutes(router, guarded)
	guarded.GET("/dashboard", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func postLogin(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set("Content-Type", formType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	return nil
}

func TestLogin_SetsSessionAndRedirects(t *testing.T) {
	router := newAuthRouter(t)

	w := postLogin(router, "email=user%40nextmail.com&password=123456&callbackUrl=%2Fdashboard%2Finvoices")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard/invoices", w.Header().Get("Location"))
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogin_IgnoresForeignCallback(t *testing.T) {
	router := newAuthRouter(t)

	w := postLogin(router, "email=user%40nextmail.com&password=123456&callbackUrl=https%3A%2F%2Fevil.example")

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/dashboard", w.Header().Get("Location"))
}

func TestLogin_InvalidCredentials(t *testing.T) {
	router := newAuthRouter(t)

	for _, body := range []string{
		"email=user%40nextmail.com&password=wrong-password",
		"email=not-an-email&password=123456",
		"email=user%40nextmail.com&password=123",
		"",
	} {
		w := postLogin(router, body)
		assert.Equal(t, http.StatusUnauthorized, w.Code, body)
		assert.Contains(t, w.Body.String(), "Invalid credentials.")
		assert.Nil(t, sessionCookie(w))
	}
}

func TestLoginPage(t *testing.T) {
	router := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/login?callbackUrl=%2Fdashboard%2Fcustomers", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"callbackUrl":"/dashboard/customers"}`, w.Body.String())
}

func TestLogout_ClearsCookie(t *testing.T) {
	router := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Less(t, cookie.MaxAge, 0)
}

func TestLocalRedirect(t *testing.T) {
	assert.Equal(t, "/dashboard/invoices?page=2", localRedirect("/dashboard/invoices?page=2", "/dashboard"))
	assert.Equal(t, "/dashboard", localRedirect("", "/dashboard"))
	assert.Equal(t, "/dashboard", localRedirect("//evil.example", "/dashboard"))
	assert.Equal(t, "/dashboard", localRedirect("http://evil.example", "/dashboard"))
	assert.Equal(t, "/dashboard", localRedirect(`/\evil.example`, "/dashboard"))
}
