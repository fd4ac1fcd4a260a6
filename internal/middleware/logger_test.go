package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newLoggedRouter(status int) (*gin.Engine, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	router := gin.New()
	router.Use(RequestResponseLogger(zap.New(core)))
	router.POST("/login", func(c *gin.Context) {
		c.JSON(status, gin.H{"token": "abc", "ok": true})
	})
	return router, logs
}

func TestRequestResponseLogger_RedactsFormBody(t *testing.T) {
	router, logs := newLoggedRouter(http.StatusOK)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader("email=user%40nextmail.com&password=123456"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Cookie", "session=abc")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)

	fields := entry.ContextMap()
	body, ok := fields["request_body"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "user@nextmail.com", body["email"])
	assert.Equal(t, redacted, body["password"])

	headers, ok := fields["headers"].(map[string]string)
	require.True(t, ok)
	assert.Equal(t, redacted, headers["Cookie"])

	resp, ok := fields["response_body"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, redacted, resp["token"])
	assert.Equal(t, true, resp["ok"])
}

func TestRequestResponseLogger_RedactsJSONBody(t *testing.T) {
	router, logs := newLoggedRouter(http.StatusUnprocessableEntity)

	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"email":"a@b.c","password":"secret","nested":{"apiKey":"k"}}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)

	body := entry.ContextMap()["request_body"].(map[string]interface{})
	assert.Equal(t, redacted, body["password"])
	nested := body["nested"].(map[string]interface{})
	assert.Equal(t, redacted, nested["apiKey"])
}

func TestLevelForStatus(t *testing.T) {
	assert.Equal(t, zapcore.InfoLevel, levelForStatus(http.StatusSeeOther))
	assert.Equal(t, zapcore.WarnLevel, levelForStatus(http.StatusNotFound))
	assert.Equal(t, zapcore.ErrorLevel, levelForStatus(http.StatusInternalServerError))
}

func TestParseAndRedactBodyTruncatesText(t *testing.T) {
	body := strings.Repeat("x", maxLoggedBody+10)
	got := parseAndRedactBody("text/plain", []byte(body))
	assert.True(t, strings.HasSuffix(got.(string), "... (truncated)"))
}
