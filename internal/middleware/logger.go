package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const redacted = "[REDACTED]"

// maxLoggedBody caps how much of a non-JSON body is logged
const maxLoggedBody = 1000

// sensitiveFields contains patterns for fields that should be redacted
var sensitiveFields = []string{
	"password",
	"token",
	"api_key",
	"apikey",
	"api-key",
	"secret",
	"authorization",
	"bearer",
	"credential",
	"session",
	"cookie",
}

// sensitiveHeaderPatterns contains regex patterns for sensitive headers
var sensitiveHeaderPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)authorization`),
	regexp.MustCompile(`(?i)api[-_]?key`),
	regexp.MustCompile(`(?i)token`),
	regexp.MustCompile(`(?i)secret`),
	regexp.MustCompile(`(?i)password`),
	regexp.MustCompile(`(?i)bearer`),
	regexp.MustCompile(`(?i)cookie`),
	regexp.MustCompile(`(?i)session`),
}

// responseWriter is a custom response writer to capture response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// RequestResponseLogger logs every request with redacted headers and
// bodies. 5xx responses log at error level, 4xx at warn.
func RequestResponseLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Start timer
		startTime := time.Now()

		// Read and store request body
		var requestBody []byte
		if c.Request.Body != nil {
			requestBody, _ = io.ReadAll(c.Request.Body)
			// Restore the body for the next handler
			c.Request.Body = io.NopCloser(bytes.NewBuffer(requestBody))
		}

		// Create custom response writer to capture response
		responseBodyWriter := &responseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBufferString(""),
		}
		c.Writer = responseBodyWriter

		// Process request
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status_code", status),
			zap.Duration("latency", time.Since(startTime)),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.Any("headers", redactHeaders(c.Request.Header)),
		}

		if query := c.Request.URL.Query(); len(query) > 0 {
			fields = append(fields, zap.Any("query_params", query))
		}
		if len(requestBody) > 0 {
			fields = append(fields, zap.Any("request_body", parseAndRedactBody(c.ContentType(), requestBody)))
		}
		if body := responseBodyWriter.body.Bytes(); len(body) > 0 {
			fields = append(fields, zap.Any("response_body", parseAndRedactBody(c.Writer.Header().Get("Content-Type"), body)))
		}
		if location := c.Writer.Header().Get("Location"); location != "" {
			fields = append(fields, zap.String("location", location))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("error", c.Errors.String()))
		}

		log.Log(levelForStatus(status), "Request handled", fields...)
	}
}

func levelForStatus(status int) zapcore.Level {
	switch {
	case status >= 500:
		return zapcore.ErrorLevel
	case status >= 400:
		return zapcore.WarnLevel
	default:
		return zapcore.InfoLevel
	}
}

// redactHeaders redacts sensitive headers
func redactHeaders(headers map[string][]string) map[string]string {
	result := make(map[string]string)
	for key, values := range headers {
		if isSensitiveHeader(key) {
			result[key] = redacted
		} else {
			result[key] = strings.Join(values, ", ")
		}
	}
	return result
}

// isSensitiveHeader checks if a header name is sensitive
func isSensitiveHeader(headerName string) bool {
	for _, pattern := range sensitiveHeaderPatterns {
		if pattern.MatchString(headerName) {
			return true
		}
	}
	return false
}

// parseAndRedactBody parses a JSON or form-encoded body and redacts
// sensitive fields. Anything else is logged as a truncated string.
func parseAndRedactBody(contentType string, body []byte) interface{} {
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		if form, err := url.ParseQuery(string(body)); err == nil {
			return redactForm(form)
		}
	}

	// Try to parse as JSON
	var jsonBody interface{}
	if err := json.Unmarshal(body, &jsonBody); err != nil {
		// If not JSON, return truncated string
		bodyStr := string(body)
		if len(bodyStr) > maxLoggedBody {
			bodyStr = bodyStr[:maxLoggedBody] + "... (truncated)"
		}
		return bodyStr
	}

	// Redact sensitive fields
	redactSensitiveFields(jsonBody)
	return jsonBody
}

// redactForm flattens a form and redacts sensitive keys
func redactForm(form url.Values) map[string]interface{} {
	result := make(map[string]interface{}, len(form))
	for key, values := range form {
		switch {
		case isSensitiveField(key):
			result[key] = redacted
		case len(values) == 1:
			result[key] = values[0]
		default:
			result[key] = values
		}
	}
	return result
}

// redactSensitiveFields recursively redacts sensitive fields in JSON data
func redactSensitiveFields(data interface{}) {
	switch v := data.(type) {
	case map[string]interface{}:
		for key, value := range v {
			if isSensitiveField(key) {
				v[key] = redacted
			} else {
				redactSensitiveFields(value)
			}
		}
	case []interface{}:
		for _, item := range v {
			redactSensitiveFields(item)
		}
	}
}

// isSensitiveField checks if a field name is sensitive
func isSensitiveField(fieldName string) bool {
	lowerField := strings.ToLower(fieldName)
	for _, sensitive := range sensitiveFields {
		if strings.Contains(lowerField, sensitive) {
			return true
		}
	}
	return false
}
