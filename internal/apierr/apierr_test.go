package apierr

import (
	"errors"
	"net/http"
	"testing"
)

func TestNewCarriesFields(t *testing.T) {
	e := New("NOT_FOUND", "no such connection", http.StatusNotFound)
	if e.Code != "NOT_FOUND" || e.Status != http.StatusNotFound {
		t.Fatalf("got %+v", e)
	}
	if e.Error() != "no such connection" {
		t.Errorf("Error() = %q", e.Error())
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("boom")
	e := Wrap(cause, "INTERNAL_ERROR", "failed", http.StatusInternalServerError)
	if !errors.Is(e, cause) {
		t.Error("expected Wrap to preserve the underlying error via Unwrap")
	}
	if e.Error() != "failed: boom" {
		t.Errorf("Error() = %q", e.Error())
	}
}

func TestPredefinedErrorsHaveDistinctCodes(t *testing.T) {
	seen := map[string]bool{}
	for _, e := range []*APIError{ErrUnauthorized, ErrConnectionNotFound, ErrReloadUnsupported, ErrInternal} {
		if seen[e.Code] {
			t.Errorf("duplicate code %q", e.Code)
		}
		seen[e.Code] = true
	}
}
