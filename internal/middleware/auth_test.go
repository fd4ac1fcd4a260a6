package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-dashboard/internal/domain"
	"github.com/ridwanfathin/invoice-dashboard/internal/service"
	"github.com/ridwanfathin/invoice-dashboard/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthRouter(t *testing.T) (*gin.Engine, string, *testutil.UserRepository) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &domain.User{ID: "410544b2-4001-4271-9855-fec4b6a6442a", Email: "user@nextmail.com", PasswordHash: string(hash)}

	users := testutil.NewUserRepository(user)
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:   users,
		JWTSecret:  "test-secret",
		SessionTTL: time.Hour,
	})
	session, err := authService.Login(context.Background(), user.Email, "123456")
	require.NoError(t, err)

	router := gin.New()
	guarded := router.Group("/", Authorized(authService))
	ok := func(c *gin.Context) { c.String(http.StatusOK, c.GetString("userID")) }
	guarded.GET("/", ok)
	guarded.GET("/login", ok)
	guarded.GET("/dashboard", ok)
	guarded.GET("/dashboard/invoices", ok)
	guarded.GET("/dashboards", ok)

	return router, session.Token, users
}

func TestAuthorized(t *testing.T) {
	router, token, _ := newAuthRouter(t)

	tests := []struct {
		name         string
		path         string
		cookie       string
		bearer       string
		wantStatus   int
		wantLocation string
	}{
		{"anonymous dashboard", "/dashboard", "", "", http.StatusSeeOther, "/login?callbackUrl=%2Fdashboard"},
		{"anonymous nested with query", "/dashboard/invoices?page=2", "", "", http.StatusSeeOther, "/login?callbackUrl=%2Fdashboard%2Finvoices%3Fpage%3D2"},
		{"anonymous login page", "/login", "", "", http.StatusOK, ""},
		{"anonymous home", "/", "", "", http.StatusOK, ""},
		{"anonymous lookalike path", "/dashboards", "", "", http.StatusOK, ""},
		{"invalid cookie", "/dashboard", "garbage", "", http.StatusSeeOther, "/login?callbackUrl=%2Fdashboard"},
		{"signed in dashboard", "/dashboard/invoices", token, "", http.StatusOK, ""},
		{"bearer dashboard", "/dashboard", "", token, http.StatusOK, ""},
		{"signed in login page", "/login", token, "", http.StatusSeeOther, "/dashboard"},
		{"signed in home", "/", token, "", http.StatusSeeOther, "/dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantLocation, w.Header().Get("Location"))
		})
	}
}

func TestAuthorizedSetsUser(t *testing.T) {
	router, token, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "410544b2-4001-4271-9855-fec4b6a6442a", w.Body.String())
}

func TestAuthorizedRejectsDeletedUser(t *testing.T) {
	router, token, users := newAuthRouter(t)
	delete(users.Users, "user@nextmail.com")

	req := httptest.NewRequest(http.MethodGet, "/dashboard/invoices", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?callbackUrl=%2Fdashboard%2Finvoices", w.Header().Get("Location"))

	// the stale session no longer bounces the login page
	req = httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthorizedUserLookupFailure(t *testing.T) {
	router, token, users := newAuthRouter(t)
	users.Err = errors.New("connection refused")

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
}
