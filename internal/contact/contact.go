// Package contact implements the address book record: a named entry with an
// ordered list of unique phone numbers and an optional birthday.
package contact

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"rolodex/internal/field"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrPhoneNotFound = errors.New("contact: phone not found")
	ErrNoBirthday    = errors.New("contact: no birthday set")
)

// Contact is a single address book record. The phone list never holds two
// numbers with the same value.
type Contact struct {
	name     field.Name
	phones   []field.Phone
	birthday *field.Birthday
}

// New creates a contact with the given name, optional initial phone numbers,
// and an optional birthday (empty string means none). Duplicate initial
// numbers collapse to one entry, like AddPhone.
func New(name string, phones []string, birthday string) (*Contact, error) {
	n, err := field.NewName(name)
	if err != nil {
		return nil, err
	}
	c := &Contact{name: n}
	for _, raw := range phones {
		if err := c.AddPhone(raw); err != nil {
			return nil, err
		}
	}
	if birthday != "" {
		if err := c.SetBirthday(birthday); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Name returns the contact's name.
func (c *Contact) Name() string { return c.name.Value() }

// Rename changes the contact's name. The caller owns re-keying any container
// the contact lives in.
func (c *Contact) Rename(name string) error {
	return c.name.Set(name)
}

// Phones returns the phone numbers in insertion order.
func (c *Contact) Phones() []string {
	out := make([]string, len(c.phones))
	for i, p := range c.phones {
		out[i] = p.Value()
	}
	return out
}

// Birthday returns the stored birthday and whether one is set.
func (c *Contact) Birthday() (string, bool) {
	if c.birthday == nil {
		return "", false
	}
	return c.birthday.Value(), true
}

// SetBirthday sets or replaces the birthday.
func (c *Contact) SetBirthday(raw string) error {
	b, err := field.NewBirthday(raw)
	if err != nil {
		return err
	}
	c.birthday = &b
	return nil
}

// AddPhone appends a phone number. Adding a number the contact already has
// is a no-op, not an error.
func (c *Contact) AddPhone(raw string) error {
	p, err := field.NewPhone(raw)
	if err != nil {
		return err
	}
	for _, existing := range c.phones {
		if existing.Equals(p) {
			return nil
		}
	}
	c.phones = append(c.phones, p)
	return nil
}

// FindPhone returns the stored number equal to raw and whether it was found.
func (c *Contact) FindPhone(raw string) (string, bool) {
	for _, p := range c.phones {
		if p.Value() == raw {
			return p.Value(), true
		}
	}
	return "", false
}

// EditPhone replaces every phone equal to oldRaw with newRaw. Both numbers
// are validated before the list is touched, so a failed edit leaves the
// contact unchanged. Returns ErrPhoneNotFound when nothing matches oldRaw.
func (c *Contact) EditPhone(oldRaw, newRaw string) error {
	old, err := field.NewPhone(oldRaw)
	if err != nil {
		return err
	}
	replacement, err := field.NewPhone(newRaw)
	if err != nil {
		return err
	}
	found := false
	for i, p := range c.phones {
		if p.Equals(old) {
			c.phones[i] = replacement
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%w: %s", ErrPhoneNotFound, oldRaw)
	}
	return nil
}

// RemovePhone removes every phone equal to raw. Removing a number the
// contact does not have is a no-op.
func (c *Contact) RemovePhone(raw string) error {
	p, err := field.NewPhone(raw)
	if err != nil {
		return err
	}
	kept := c.phones[:0]
	for _, existing := range c.phones {
		if !existing.Equals(p) {
			kept = append(kept, existing)
		}
	}
	c.phones = kept
	return nil
}

// DaysToBirthday returns the number of days from now to the next occurrence
// of the birthday's month and day. A birthday falling on today's date counts
// as 0 days, not 365. Returns ErrNoBirthday when no birthday is set.
func (c *Contact) DaysToBirthday(now time.Time) (int, error) {
	if c.birthday == nil {
		return 0, ErrNoBirthday
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	next := time.Date(now.Year(), time.Month(c.birthday.Month()), c.birthday.Day(), 0, 0, 0, 0, time.UTC)
	if today.After(next) {
		next = time.Date(now.Year()+1, time.Month(c.birthday.Month()), c.birthday.Day(), 0, 0, 0, 0, time.UTC)
	}
	return int(next.Sub(today).Hours() / 24), nil
}

// Countdown renders the days-to-birthday as a user-facing message.
func (c *Contact) Countdown(now time.Time) (string, error) {
	days, err := c.DaysToBirthday(now)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d days left until birthday %s", days, c.name.Value()), nil
}

// String renders the record as a single display line.
func (c *Contact) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Contact name: %s, phones: %s", c.name.Value(), strings.Join(c.Phones(), "; "))
	if c.birthday != nil {
		fmt.Fprintf(&b, ", birthday: %s", c.birthday.Value())
	}
	return b.String()
}
