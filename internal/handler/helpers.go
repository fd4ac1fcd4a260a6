package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ridwanfathin/invoice-dashboard/internal/validation"
)

// invoiceFormFields are the submitted values the invoice forms read
var invoiceFormFields = []string{
	validation.FieldCustomerID,
	validation.FieldAmount,
	validation.FieldStatus,
}

// getPathParam retrieves a path parameter and validates it's not empty
func getPathParam(c *gin.Context, paramName string) (string, error) {
	value := c.Param(paramName)
	if value == "" {
		return "", fmt.Errorf("%s is required", paramName)
	}
	return value, nil
}

// getQueryInt retrieves an integer query parameter with a default value
func getQueryInt(c *gin.Context, paramName string, defaultValue int) (int, error) {
	valueStr := c.Query(paramName)
	if valueStr == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: must be an integer", paramName)
	}

	return value, nil
}

// formFields collects the raw invoice values from a JSON or form body.
// Fields that were not submitted are left out of the map; their types are
// whatever the client sent.
func formFields(c *gin.Context) (map[string]any, error) {
	fields := make(map[string]any, len(invoiceFormFields))

	if c.ContentType() == gin.MIMEJSON {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read body: %w", err)
		}
		if len(bytes.TrimSpace(body)) == 0 {
			return fields, nil
		}

		var payload map[string]any
		decoder := json.NewDecoder(bytes.NewReader(body))
		decoder.UseNumber()
		if err := decoder.Decode(&payload); err != nil {
			return nil, fmt.Errorf("invalid JSON format: %v", err)
		}
		for _, name := range invoiceFormFields {
			if value, ok := payload[name]; ok {
				fields[name] = value
			}
		}
		return fields, nil
	}

	for _, name := range invoiceFormFields {
		if value, ok := c.GetPostForm(name); ok {
			fields[name] = value
		}
	}
	return fields, nil
}

// localRedirect returns target when it is a path on this server, else fallback
func localRedirect(target, fallback string) string {
	if target == "" || !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return fallback
	}
	return target
}
