package contact

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"rolodex/internal/field"
)

func TestNew(t *testing.T) {
	// Given a name, duplicate initial phones, and a birthday
	c, err := New("Alice", []string{"1234567890", "1234567890", "5551234567"}, "2000-05-10")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Then duplicates collapse and all fields are stored
	if c.Name() != "Alice" {
		t.Errorf("Name() = %q, want %q", c.Name(), "Alice")
	}
	want := []string{"1234567890", "5551234567"}
	if !reflect.DeepEqual(c.Phones(), want) {
		t.Errorf("Phones() = %v, want %v", c.Phones(), want)
	}
	bday, ok := c.Birthday()
	if !ok || bday != "2000-05-10" {
		t.Errorf("Birthday() = %q, %v, want %q, true", bday, ok, "2000-05-10")
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		contact  string
		phones   []string
		birthday string
	}{
		{name: "empty name", contact: "", phones: nil, birthday: ""},
		{name: "bad phone", contact: "Alice", phones: []string{"123"}, birthday: ""},
		{name: "bad birthday", contact: "Alice", phones: nil, birthday: "05-10-2000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.contact, tt.phones, tt.birthday)
			if !errors.Is(err, field.ErrValidation) {
				t.Errorf("New() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestAddPhone_DuplicateIsNoOp(t *testing.T) {
	// Given a contact with one phone
	c := mustContact(t, "Alice", "1234567890")

	// When the same number is added again
	if err := c.AddPhone("1234567890"); err != nil {
		t.Fatalf("AddPhone() error = %v", err)
	}

	// Then exactly one phone remains
	if got := len(c.Phones()); got != 1 {
		t.Errorf("phone count = %d, want 1", got)
	}
}

func TestAddPhone_InvalidLeavesListUnchanged(t *testing.T) {
	c := mustContact(t, "Alice", "1234567890")

	err := c.AddPhone("not-a-phone")

	if !errors.Is(err, field.ErrValidation) {
		t.Fatalf("AddPhone() error = %v, want ErrValidation", err)
	}
	if !reflect.DeepEqual(c.Phones(), []string{"1234567890"}) {
		t.Errorf("Phones() = %v, want unchanged", c.Phones())
	}
}

func TestFindPhone(t *testing.T) {
	c := mustContact(t, "Alice", "1234567890")

	if got, ok := c.FindPhone("1234567890"); !ok || got != "1234567890" {
		t.Errorf("FindPhone() = %q, %v, want %q, true", got, ok, "1234567890")
	}
	if _, ok := c.FindPhone("0000000000"); ok {
		t.Error("FindPhone(absent) ok = true, want false")
	}
}

func TestEditPhone_ReplacesMatch(t *testing.T) {
	// Given a contact with two phones
	c := mustContact(t, "Alice", "1234567890")
	if err := c.AddPhone("5551234567"); err != nil {
		t.Fatalf("AddPhone() error = %v", err)
	}

	// When the first number is edited
	if err := c.EditPhone("1234567890", "0987654321"); err != nil {
		t.Fatalf("EditPhone() error = %v", err)
	}

	// Then it is replaced in place
	want := []string{"0987654321", "5551234567"}
	if !reflect.DeepEqual(c.Phones(), want) {
		t.Errorf("Phones() = %v, want %v", c.Phones(), want)
	}
}

func TestEditPhone_ReplacesEveryMatch(t *testing.T) {
	// Given a list where two entries hold the same value. AddPhone dedups,
	// so the duplicate is manufactured by editing one number into another.
	c := mustContact(t, "Alice", "1111111111")
	if err := c.AddPhone("2222222222"); err != nil {
		t.Fatalf("AddPhone() error = %v", err)
	}
	if err := c.EditPhone("1111111111", "2222222222"); err != nil {
		t.Fatalf("EditPhone() error = %v", err)
	}
	if !reflect.DeepEqual(c.Phones(), []string{"2222222222", "2222222222"}) {
		t.Fatalf("setup: Phones() = %v", c.Phones())
	}

	// When the duplicated number is edited
	if err := c.EditPhone("2222222222", "3333333333"); err != nil {
		t.Fatalf("EditPhone() error = %v", err)
	}

	// Then every match is replaced, not just the first
	want := []string{"3333333333", "3333333333"}
	if !reflect.DeepEqual(c.Phones(), want) {
		t.Errorf("Phones() = %v, want %v", c.Phones(), want)
	}
}

func TestEditPhone_NotFound(t *testing.T) {
	c := mustContact(t, "Alice", "1234567890")

	err := c.EditPhone("0000000000", "0987654321")

	if !errors.Is(err, ErrPhoneNotFound) {
		t.Fatalf("EditPhone() error = %v, want ErrPhoneNotFound", err)
	}
	if !reflect.DeepEqual(c.Phones(), []string{"1234567890"}) {
		t.Errorf("Phones() = %v, want unchanged", c.Phones())
	}
}

func TestEditPhone_InvalidNewLeavesListUnchanged(t *testing.T) {
	// Given a contact whose old number exists
	c := mustContact(t, "Alice", "1234567890")

	// When the replacement is ill-formed
	err := c.EditPhone("1234567890", "bad")

	// Then validation fails before any mutation
	if !errors.Is(err, field.ErrValidation) {
		t.Fatalf("EditPhone() error = %v, want ErrValidation", err)
	}
	if !reflect.DeepEqual(c.Phones(), []string{"1234567890"}) {
		t.Errorf("Phones() = %v, want unchanged", c.Phones())
	}
}

func TestRemovePhone(t *testing.T) {
	c := mustContact(t, "Alice", "1234567890")
	if err := c.AddPhone("5551234567"); err != nil {
		t.Fatalf("AddPhone() error = %v", err)
	}

	// When a present number is removed
	if err := c.RemovePhone("1234567890"); err != nil {
		t.Fatalf("RemovePhone() error = %v", err)
	}
	if !reflect.DeepEqual(c.Phones(), []string{"5551234567"}) {
		t.Errorf("Phones() = %v, want %v", c.Phones(), []string{"5551234567"})
	}

	// And removing an absent number is a no-op
	if err := c.RemovePhone("0000000000"); err != nil {
		t.Fatalf("RemovePhone(absent) error = %v", err)
	}
	if got := len(c.Phones()); got != 1 {
		t.Errorf("phone count = %d, want 1", got)
	}

	// But an ill-formed number is still rejected
	if err := c.RemovePhone("xyz"); !errors.Is(err, field.ErrValidation) {
		t.Errorf("RemovePhone(invalid) error = %v, want ErrValidation", err)
	}
}

func TestDaysToBirthday(t *testing.T) {
	// Fixed clock: March 15, 2024, mid-afternoon.
	now := time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		birthday string
		want     int
	}{
		{name: "later this year", birthday: "2000-05-10", want: 56},
		{name: "today counts as zero", birthday: "2000-03-15", want: 0},
		{name: "already passed rolls to next year", birthday: "2000-01-01", want: 292},
		{name: "tomorrow", birthday: "2000-03-16", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New("Alice", nil, tt.birthday)
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			got, err := c.DaysToBirthday(now)
			if err != nil {
				t.Fatalf("DaysToBirthday() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DaysToBirthday() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysToBirthday_NoBirthday(t *testing.T) {
	c := mustContact(t, "Alice", "1234567890")

	_, err := c.DaysToBirthday(time.Now())

	if !errors.Is(err, ErrNoBirthday) {
		t.Errorf("DaysToBirthday() error = %v, want ErrNoBirthday", err)
	}
}

func TestCountdown(t *testing.T) {
	now := time.Date(2024, time.March, 15, 9, 0, 0, 0, time.UTC)
	c, err := New("Alice", nil, "2000-05-10")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	got, err := c.Countdown(now)
	if err != nil {
		t.Fatalf("Countdown() error = %v", err)
	}
	want := "56 days left until birthday Alice"
	if got != want {
		t.Errorf("Countdown() = %q, want %q", got, want)
	}
}

func TestString(t *testing.T) {
	// Without a birthday, the birthday clause is omitted.
	c := mustContact(t, "Alice", "1234567890")
	if err := c.AddPhone("5551234567"); err != nil {
		t.Fatalf("AddPhone() error = %v", err)
	}
	want := "Contact name: Alice, phones: 1234567890; 5551234567"
	if got := c.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	// With a birthday, it is appended.
	if err := c.SetBirthday("2000-05-10"); err != nil {
		t.Fatalf("SetBirthday() error = %v", err)
	}
	want += ", birthday: 2000-05-10"
	if got := c.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRename(t *testing.T) {
	c := mustContact(t, "Alice", "1234567890")

	if err := c.Rename(""); !errors.Is(err, field.ErrValidation) {
		t.Fatalf("Rename(\"\") error = %v, want ErrValidation", err)
	}
	if c.Name() != "Alice" {
		t.Errorf("Name() after failed Rename = %q, want Alice", c.Name())
	}

	if err := c.Rename("Alicia"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if c.Name() != "Alicia" {
		t.Errorf("Name() = %q, want Alicia", c.Name())
	}
}

// mustContact builds a contact with a single phone, failing the test on error.
func mustContact(t *testing.T, name, phone string) *Contact {
	t.Helper()
	c, err := New(name, []string{phone}, "")
	if err != nil {
		t.Fatalf("New(%q) error = %v", name, err)
	}
	return c
}
