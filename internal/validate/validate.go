package validate

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var (
	reEmail = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,6}$`)
	rePhone = regexp.MustCompile(`^[0-9]{9}$`)
	// Chilean RUT: XX.XXX.XXX-D with a module-11 check digit.
	reRUT = regexp.MustCompile(`^[0-9]{1,2}\.[0-9]{3}\.[0-9]{3}-[0-9Kk]$`)
)

// ID validates an opaque record identifier (UUID string).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	_, err := uuid.Parse(s)
	return s, err == nil
}

// NonEmpty trims and rejects blank values.
func NonEmpty(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Phone accepts exactly 9 digits.
func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, rePhone.MatchString(s)
}

// RUT validates format and the module-11 check digit.
func RUT(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !reRUT.MatchString(s) {
		return "", false
	}
	return s, rutChecksumOK(s)
}

func rutChecksumOK(rut string) bool {
	clean := strings.ReplaceAll(rut, ".", "")
	parts := strings.Split(clean, "-")
	if len(parts) != 2 {
		return false
	}
	num, dv := parts[0], strings.ToLower(parts[1])

	sum, factor := 0, 2
	for i := len(num) - 1; i >= 0; i-- {
		sum += int(num[i]-'0') * factor
		if factor == 7 {
			factor = 2
		} else {
			factor++
		}
	}

	var want string
	switch 11 - sum%11 {
	case 11:
		want = "0"
	case 10:
		want = "k"
	default:
		want = string(rune('0' + 11 - sum%11))
	}
	return want == dv
}
