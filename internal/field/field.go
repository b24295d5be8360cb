// Package field implements the validated scalar values a contact is built
// from: names, phone numbers, and birthdays. Each type validates through a
// checked constructor, and Set re-runs the same predicate, so any value that
// exists is well-formed and a rejected mutation leaves the old value intact.
package field

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrValidation indicates a value that does not satisfy its field's format.
var ErrValidation = errors.New("field: invalid value")

// Name is a contact's display name. Any non-empty string is valid.
type Name struct {
	value string
}

// NewName creates a Name from a raw string.
func NewName(value string) (Name, error) {
	if value == "" {
		return Name{}, fmt.Errorf("%w: name cannot be empty", ErrValidation)
	}
	return Name{value: value}, nil
}

// Set replaces the stored name. On validation failure the old value is kept.
func (n *Name) Set(value string) error {
	replacement, err := NewName(value)
	if err != nil {
		return err
	}
	*n = replacement
	return nil
}

// Value returns the raw name string.
func (n Name) Value() string { return n.value }

func (n Name) String() string { return n.value }

// phonePattern accepts exactly 10 ASCII digits, nothing else.
var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Phone is a validated 10-digit phone number.
type Phone struct {
	value string
}

// NewPhone creates a Phone from a raw digit string.
func NewPhone(value string) (Phone, error) {
	if !phonePattern.MatchString(value) {
		return Phone{}, fmt.Errorf("%w: phone %q must be exactly 10 digits", ErrValidation, value)
	}
	return Phone{value: value}, nil
}

// Set replaces the stored number. On validation failure the old value is kept.
func (p *Phone) Set(value string) error {
	replacement, err := NewPhone(value)
	if err != nil {
		return err
	}
	*p = replacement
	return nil
}

// Value returns the raw digit string.
func (p Phone) Value() string { return p.value }

func (p Phone) String() string { return p.value }

// Equals reports value equality with another phone.
func (p Phone) Equals(other Phone) bool { return p.value == other.value }

// birthdayPattern accepts the YYYY-MM-DD shape; range checks happen after.
var birthdayPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// Birthday is a calendar date in YYYY-MM-DD form. Month must be in [1,12]
// and day in [1,31]; the day is not checked against the month's length, so
// dates like 2000-02-30 pass. Lenient on purpose.
type Birthday struct {
	value string
	month int
	day   int
}

// NewBirthday creates a Birthday from a raw date string.
func NewBirthday(value string) (Birthday, error) {
	parts := birthdayPattern.FindStringSubmatch(value)
	if parts == nil {
		return Birthday{}, fmt.Errorf("%w: birthday %q must use YYYY-MM-DD", ErrValidation, value)
	}
	month, _ := strconv.Atoi(parts[2])
	day, _ := strconv.Atoi(parts[3])
	if month < 1 || month > 12 {
		return Birthday{}, fmt.Errorf("%w: birthday %q month must be between 1 and 12", ErrValidation, value)
	}
	if day < 1 || day > 31 {
		return Birthday{}, fmt.Errorf("%w: birthday %q day must be between 1 and 31", ErrValidation, value)
	}
	return Birthday{value: value, month: month, day: day}, nil
}

// Set replaces the stored date. On validation failure the old value is kept.
func (b *Birthday) Set(value string) error {
	replacement, err := NewBirthday(value)
	if err != nil {
		return err
	}
	*b = replacement
	return nil
}

// Value returns the raw date string.
func (b Birthday) Value() string { return b.value }

func (b Birthday) String() string { return b.value }

// Month returns the parsed month, 1 through 12.
func (b Birthday) Month() int { return b.month }

// Day returns the parsed day, 1 through 31.
func (b Birthday) Day() int { return b.day }
