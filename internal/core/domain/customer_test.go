package domain

import (
	"errors"
	"strings"
	"testing"
)

func validCustomer() *Customer {
	return &Customer{FirstName: "Ann", LastName: "Lee", Email: "ann@x.com"}
}

func TestCustomer_FullName(t *testing.T) {
	if got := validCustomer().FullName(); got != "Ann Lee" {
		t.Fatalf("expected %q, got %q", "Ann Lee", got)
	}
}

func TestCustomer_Validate_OK(t *testing.T) {
	if err := validCustomer().Validate(); err != nil {
		t.Fatalf("expected valid customer, got %v", err)
	}
}

func TestCustomer_Validate_MissingRequired(t *testing.T) {
	c := &Customer{Email: "not-an-email"}

	err := c.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}

	fields := ve.FieldMap()
	if fields["first_name"] != "is required" {
		t.Errorf("first_name: got %q", fields["first_name"])
	}
	if fields["last_name"] != "is required" {
		t.Errorf("last_name: got %q", fields["last_name"])
	}
	if fields["email"] != "must be a valid email" {
		t.Errorf("email: got %q", fields["email"])
	}
}

func TestCustomer_Validate_WhitespaceNameIsPresent(t *testing.T) {
	c := validCustomer()
	c.FirstName = "   "
	if err := c.Validate(); err != nil {
		t.Fatalf("whitespace-only name should pass presence check, got %v", err)
	}
}

func TestCustomer_Validate_MaxLength(t *testing.T) {
	c := validCustomer()
	c.Phone = strings.Repeat("9", 21)

	err := c.Validate()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if ve.Error() != "phone must be at most 20 characters" {
		t.Fatalf("unexpected message: %q", ve.Error())
	}
}
