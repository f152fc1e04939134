package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	pkgerrors "github.com/ubnaturals/express-checkout/pkg/errors"
)

type demoBody struct {
	Code     string `json:"code" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=0"`
}

func TestDecodeJSONBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"code":"WELCOME10","quantity":2}`))
	var body demoBody
	if err := DecodeJSONBody(r, &body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body.Code != "WELCOME10" || body.Quantity != 2 {
		t.Fatalf("unexpected decode result: %+v", body)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"code":"X","bogus":true}`))
	var body demoBody
	err := DecodeJSONBody(r, &body)
	if err == nil {
		t.Fatalf("expected error for unknown field")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeJSONBodyEnforcesRequired(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"quantity":1}`))
	var body demoBody
	err := DecodeJSONBody(r, &body)
	if err == nil {
		t.Fatalf("expected error for missing code")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("expected field details, got %T", typed.Details())
	}
	if _, ok := details["code"]; !ok {
		t.Fatalf("expected detail for code field, got %v", details)
	}
}

func TestSanitizeString(t *testing.T) {
	if got := SanitizeString("  WELCOME10  ", 20); got != "WELCOME10" {
		t.Fatalf("unexpected sanitize result %q", got)
	}
	if got := SanitizeString("abcdef", 3); got != "abc" {
		t.Fatalf("expected truncation, got %q", got)
	}
}
