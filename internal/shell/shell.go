// Package shell implements the interactive console session: a menu of
// commands, free-text prompts for each field, and report-and-continue error
// handling. Every core error is recoverable here; the loop only ends on
// "exit" or end of input.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"rolodex/internal/book"
	"rolodex/internal/codec"
	"rolodex/internal/contact"
	"rolodex/internal/field"
)

var (
	menuStyle  = lipgloss.NewStyle().Faint(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

var menuLines = []string{
	"add. add a contact",
	"view. view all contacts",
	"find. find a contact by name",
	"search. search contacts by partial name or phone",
	"edit. edit a phone number",
	"delete. delete a contact",
	"save. save the address book",
	"load. load the address book from disk",
	"exit",
}

// Shell drives an interactive session over injected streams.
type Shell struct {
	book *book.Book
	in   *bufio.Scanner
	w    io.Writer

	// bookPath is the default save/load target; prompts may override it
	// per command.
	bookPath string

	// now is injected for birthday countdown tests.
	now func() time.Time
}

// New creates a shell reading commands from in and writing to w, using
// bookPath as the default persistence target.
func New(in io.Reader, w io.Writer, bookPath string) *Shell {
	return &Shell{
		book:     book.New(),
		in:       bufio.NewScanner(in),
		w:        w,
		bookPath: bookPath,
		now:      time.Now,
	}
}

// Run loads the configured book, then processes commands until exit or EOF.
// A missing book file means a fresh start; any other load failure is
// reported and the session begins empty.
func (s *Shell) Run() error {
	if loaded, err := codec.Load(s.bookPath); err == nil {
		s.book = loaded
	} else if !errors.Is(err, fs.ErrNotExist) {
		s.reportError(err)
	}

	for {
		fmt.Fprintln(s.w, menuStyle.Render(strings.Join(menuLines, "\n")))
		choice, ok := s.prompt("choose your command: ")
		if !ok {
			return nil
		}
		if s.dispatch(strings.TrimSpace(choice)) {
			return nil
		}
	}
}

// dispatch runs one command, reporting errors without ending the session.
// Returns true when the session should end.
func (s *Shell) dispatch(choice string) bool {
	switch choice {
	case "add":
		s.cmdAdd()
	case "view":
		s.cmdView()
	case "find":
		s.cmdFind()
	case "search":
		s.cmdSearch()
	case "edit":
		s.cmdEdit()
	case "delete":
		s.cmdDelete()
	case "save":
		s.cmdSave()
	case "load":
		s.cmdLoad()
	case "exit":
		fmt.Fprintln(s.w, "Exiting...")
		return true
	default:
		s.reportError(fmt.Errorf("unknown command %q", choice))
	}
	return false
}

func (s *Shell) cmdAdd() {
	name, ok := s.prompt("Enter name: ")
	if !ok {
		return
	}

	phone, ok := s.promptValidPhone("Enter phone number: ")
	if !ok {
		return
	}

	birthday, ok := s.promptBirthday()
	if !ok {
		return
	}

	c, err := contact.New(name, []string{phone}, birthday)
	if err != nil {
		s.reportError(err)
		return
	}
	s.book.AddRecord(c)
	fmt.Fprintln(s.w, okStyle.Render("Contact saved."))
}

func (s *Shell) cmdView() {
	if s.book.Len() == 0 {
		fmt.Fprintln(s.w, "The address book is empty.")
		return
	}
	fmt.Fprintln(s.w, "All contacts:")
	fmt.Fprintln(s.w, s.book)
}

func (s *Shell) cmdFind() {
	name, ok := s.prompt("Enter name to find: ")
	if !ok {
		return
	}
	c, found := s.book.Find(name)
	if !found {
		fmt.Fprintf(s.w, "No contact named %q.\n", name)
		return
	}
	fmt.Fprintln(s.w, c)
	if countdown, err := c.Countdown(s.now()); err == nil {
		fmt.Fprintln(s.w, countdown)
	}
}

func (s *Shell) cmdSearch() {
	query, ok := s.prompt("Enter the search query: ")
	if !ok {
		return
	}
	matches := s.book.Search(query)
	if len(matches) == 0 {
		fmt.Fprintln(s.w, "No matching contacts found.")
		return
	}
	fmt.Fprintln(s.w, "Matching contacts:")
	for _, m := range matches {
		fmt.Fprintln(s.w, m)
	}
}

func (s *Shell) cmdEdit() {
	name, ok := s.prompt("Enter name: ")
	if !ok {
		return
	}
	c, found := s.book.Find(name)
	if !found {
		fmt.Fprintf(s.w, "No contact named %q.\n", name)
		return
	}

	// Re-prompt until the edit succeeds; validation and not-found failures
	// leave the contact untouched.
	for {
		oldPhone, ok := s.prompt("Enter old phone number: ")
		if !ok {
			return
		}
		newPhone, ok := s.prompt("Enter new phone number: ")
		if !ok {
			return
		}
		if err := c.EditPhone(oldPhone, newPhone); err != nil {
			s.reportError(err)
			continue
		}
		fmt.Fprintln(s.w, okStyle.Render("Phone number updated."))
		return
	}
}

func (s *Shell) cmdDelete() {
	name, ok := s.prompt("Enter name to delete: ")
	if !ok {
		return
	}
	s.book.Delete(name)
	fmt.Fprintln(s.w, okStyle.Render("Contact deleted."))
}

func (s *Shell) cmdSave() {
	path, ok := s.promptPath("Enter file to save to")
	if !ok {
		return
	}
	if err := codec.Save(path, s.book); err != nil {
		s.reportError(err)
		return
	}
	fmt.Fprintf(s.w, "Address book saved to %s.\n", path)
}

func (s *Shell) cmdLoad() {
	path, ok := s.promptPath("Enter file to load from")
	if !ok {
		return
	}
	loaded, err := codec.Load(path)
	if err != nil {
		// The in-memory book stays as it was.
		s.reportError(err)
		return
	}
	s.book = loaded
	fmt.Fprintf(s.w, "Address book loaded from %s.\n", path)
}

// promptValidPhone re-prompts until a well-formed number is entered.
func (s *Shell) promptValidPhone(label string) (string, bool) {
	for {
		raw, ok := s.prompt(label)
		if !ok {
			return "", false
		}
		if _, err := field.NewPhone(raw); err != nil {
			s.reportError(err)
			fmt.Fprintln(s.w, "Please enter exactly 10 digits.")
			continue
		}
		return raw, true
	}
}

// promptBirthday re-prompts until a valid date or an empty line (no
// birthday) is entered.
func (s *Shell) promptBirthday() (string, bool) {
	for {
		raw, ok := s.prompt("Enter birthday (YYYY-MM-DD, empty for none): ")
		if !ok {
			return "", false
		}
		if raw == "" {
			return "", true
		}
		if _, err := field.NewBirthday(raw); err != nil {
			s.reportError(err)
			continue
		}
		return raw, true
	}
}

// promptPath asks for a file path, defaulting to the configured book path on
// an empty answer.
func (s *Shell) promptPath(label string) (string, bool) {
	path, ok := s.prompt(fmt.Sprintf("%s (empty for %s): ", label, s.bookPath))
	if !ok {
		return "", false
	}
	if path == "" {
		path = s.bookPath
	}
	return path, true
}

// prompt prints a label and reads one line. ok is false at end of input.
func (s *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.w, label)
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func (s *Shell) reportError(err error) {
	fmt.Fprintln(s.w, errorStyle.Render(fmt.Sprintf("error: %s", err)))
}
