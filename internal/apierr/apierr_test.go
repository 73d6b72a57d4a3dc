package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromExtractsWrappedError(t *testing.T) {
	t.Parallel()

	original := NotFound("member")
	wrapped := fmt.Errorf("service layer: %w", original)

	got := From(wrapped)
	if got.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", got.Status)
	}
	if got.Code != "not_found" {
		t.Errorf("code = %q", got.Code)
	}
}

func TestFromWrapsUnknownErrorAs500(t *testing.T) {
	t.Parallel()

	got := From(errors.New("boom"))
	if got.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", got.Status)
	}
	if got.Code != "internal_error" {
		t.Errorf("code = %q", got.Code)
	}
	if got.Error() != "boom" {
		t.Errorf("message = %q, want original", got.Error())
	}
}

func TestValidationCarriesFields(t *testing.T) {
	t.Parallel()

	err := Validation(map[string]string{"question": "this field is required"})
	if err.Status != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", err.Status)
	}
	if err.Fields["question"] == "" {
		t.Error("field map lost")
	}
}

func TestUpstreamPreservesRawMessage(t *testing.T) {
	t.Parallel()

	err := Upstream(errors.New("connection refused"))
	if err.Error() != "connection refused" {
		t.Errorf("message = %q, want raw upstream message", err.Error())
	}
	if err.Code != "upstream_error" {
		t.Errorf("code = %q", err.Code)
	}
}
