package validation

import (
	"fmt"
	"math"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	MaxTitleLength       = 120
	MaxDescriptionLength = 2000
	MaxEmailLength       = 254
	MaxPriceAmount       = 10_000_000

	// CountryCode is prepended to every stored phone number.
	CountryCode = "90"
	// Turkish subscriber numbers have ten digits after the trunk prefix.
	nationalNumberLength = 10
)

func ValidateTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("title cannot be empty")
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fmt.Errorf("title cannot exceed %d characters", MaxTitleLength)
	}
	return nil
}

func ValidateDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("description cannot be empty")
	}
	if utf8.RuneCountInString(description) > MaxDescriptionLength {
		return fmt.Errorf("description cannot exceed %d characters", MaxDescriptionLength)
	}
	return nil
}

// ValidatePrice accepts nil (barter) or a finite non-negative amount.
func ValidatePrice(amount *float64) error {
	if amount == nil {
		return nil
	}
	v := *amount
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("price must be a number")
	}
	if v < 0 {
		return fmt.Errorf("price cannot be negative")
	}
	if v > MaxPriceAmount {
		return fmt.Errorf("price cannot exceed %d", MaxPriceAmount)
	}
	return nil
}

// NormalizePhone turns user input such as "0532 111 22 33" or
// "+90 (532) 111-22-33" into "905321112233": digits only, no leading zero
// or plus sign, prefixed with the country code.
func NormalizePhone(input string) (string, error) {
	var b strings.Builder
	for _, r := range input {
		if unicode.IsDigit(r) && r < utf8.RuneSelf {
			b.WriteRune(r)
		}
	}
	digits := strings.TrimLeft(b.String(), "0")
	if digits == "" {
		return "", fmt.Errorf("phone number cannot be empty")
	}

	if strings.HasPrefix(digits, CountryCode) && len(digits) == len(CountryCode)+nationalNumberLength {
		digits = digits[len(CountryCode):]
	}
	if len(digits) != nationalNumberLength {
		return "", fmt.Errorf("phone number must have %d digits after the leading zero", nationalNumberLength)
	}
	return CountryCode + digits, nil
}

func ValidateEmail(email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", fmt.Errorf("email cannot be empty")
	}
	if len(email) > MaxEmailLength {
		return "", fmt.Errorf("email cannot exceed %d characters", MaxEmailLength)
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", fmt.Errorf("invalid email address")
	}
	return strings.ToLower(email), nil
}

// IsUUID reports whether id is a hyphenated UUID, the only form row ids take.
func IsUUID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
