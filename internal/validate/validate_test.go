package validate_test

import (
	"testing"

	"github.com/google/uuid"

	"fastbite/internal/validate"
)

func TestRUT(t *testing.T) {
	valid := []string{"11.111.111-1", "12.345.678-5", "1.111.118-K", "1.111.118-k"}
	for _, rut := range valid {
		if _, ok := validate.RUT(rut); !ok {
			t.Errorf("RUT(%q) should be valid", rut)
		}
	}

	invalid := []string{
		"",
		"12345678-5",      // missing dots
		"12.345.678-9",    // wrong check digit
		"12.345.67-5",     // wrong grouping
		"ab.cde.fgh-5",    // not numeric
		"112.345.678-5",   // too many leading digits
		"12.345.678-",     // missing check digit
		" 12.345.678-5 x", // trailing junk
	}
	for _, rut := range invalid {
		if _, ok := validate.RUT(rut); ok {
			t.Errorf("RUT(%q) should be invalid", rut)
		}
	}
}

func TestPhone(t *testing.T) {
	if _, ok := validate.Phone("987654321"); !ok {
		t.Error("9-digit phone should pass")
	}
	for _, s := range []string{"", "12345678", "1234567890", "98765432a", "+56987654"} {
		if _, ok := validate.Phone(s); ok {
			t.Errorf("Phone(%q) should fail", s)
		}
	}
}

func TestEmail(t *testing.T) {
	if _, ok := validate.Email("ana@fastbite.cl"); !ok {
		t.Error("valid email rejected")
	}
	for _, s := range []string{"", "not-an-email", "a@b", "a@b."} {
		if _, ok := validate.Email(s); ok {
			t.Errorf("Email(%q) should fail", s)
		}
	}
}

func TestID(t *testing.T) {
	if _, ok := validate.ID(uuid.NewString()); !ok {
		t.Error("uuid should pass")
	}
	for _, s := range []string{"", "  ", "not-a-uuid", "1234"} {
		if _, ok := validate.ID(s); ok {
			t.Errorf("ID(%q) should fail", s)
		}
	}
}

func TestNonEmpty(t *testing.T) {
	if s, ok := validate.NonEmpty("  hello "); !ok || s != "hello" {
		t.Errorf("want trimmed %q, got %q ok=%v", "hello", s, ok)
	}
	if _, ok := validate.NonEmpty("   "); ok {
		t.Error("blank string should fail")
	}
}
