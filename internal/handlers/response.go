package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/coralab/coralab-backend/internal/apierr"
)

// respondOK writes the standard success envelope.
func respondOK(c *gin.Context, status int, message string, data interface{}) {
	c.JSON(status, gin.H{"message": message, "data": data})
}

// respondError maps any error to the wire format: validation failures
// carry a per-field errors object, everything else a bare message.
func respondError(c *gin.Context, err error) {
	apiErr := apierr.From(err)
	if apiErr.Code == "validation_failed" {
		c.JSON(apiErr.Status, gin.H{
			"message": "validation failed",
			"errors":  apiErr.Fields,
		})
		return
	}
	c.JSON(apiErr.Status, gin.H{"message": apiErr.Error()})
}

// bindJSON decodes and validates the request body, translating
// validator failures into the per-field error map.
func bindJSON(c *gin.Context, out interface{}) error {
	if err := c.ShouldBindJSON(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fieldPath(fe)] = validationMessage(fe)
			}
			return apierr.Validation(fields)
		}
		return apierr.Validation(map[string]string{"body": "request body is not valid JSON"})
	}
	return nil
}

// fieldPath strips the root struct name from the validator namespace, so
// nested fields report as "title.id" and flat fields as "email".
func fieldPath(fe validator.FieldError) string {
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}
	return strings.ToLower(path)
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed on rule " + fe.Tag()
	}
}

// pathUUID parses a :param path segment as a UUID.
func pathUUID(c *gin.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, apierr.Validation(map[string]string{name: "must be a valid uuid"})
	}
	return id, nil
}

func pathUUIDFromString(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apierr.Validation(map[string]string{field: "must be a valid uuid"})
	}
	return id, nil
}
