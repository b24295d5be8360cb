package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"rolodex/internal/book"
	"rolodex/internal/browse"
	"rolodex/internal/codec"
	"rolodex/internal/config"
	"rolodex/internal/contact"
	"rolodex/internal/shell"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// CLI is the top-level command structure for rolodex. Without a subcommand
// it drops into the interactive shell.
type CLI struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Shell   ShellCmd         `cmd:"" default:"1" help:"Start the interactive shell."`
	Add     AddCmd           `cmd:"" help:"Add a contact to the book."`
	View    ViewCmd          `cmd:"" help:"Print every contact."`
	Find    FindCmd          `cmd:"" help:"Find a contact by exact name."`
	Search  SearchCmd        `cmd:"" help:"Search contacts by partial name or phone."`
	Edit    EditCmd          `cmd:"" help:"Replace a contact's phone number."`
	Delete  DeleteCmd        `cmd:"" help:"Delete a contact."`
	Browse  BrowseCmd        `cmd:"" help:"Page through the book in a full-screen viewer."`
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/rolodex/config.yaml"),
		".rolodex.yaml",
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadBook reads the book at path, treating a missing file as an empty book.
func loadBook(path string) (*book.Book, error) {
	b, err := codec.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return book.New(), nil
		}
		return nil, err
	}
	return b, nil
}

// ShellCmd starts the interactive menu session.
type ShellCmd struct {
	Book string `help:"Path to the address book file (overrides config)." type:"path"`
}

// Run executes the shell command.
func (s *ShellCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	path := cfg.Book.Path
	if s.Book != "" {
		path = s.Book
	}
	return shell.New(os.Stdin, os.Stdout, path).Run()
}

// AddCmd adds a contact and saves the book.
type AddCmd struct {
	Name     string   `arg:"" help:"Contact name."`
	Phone    []string `help:"Phone number, exactly 10 digits (repeatable)." short:"p"`
	Birthday string   `help:"Birthday in YYYY-MM-DD." short:"b"`
}

// Run executes the add command.
func (a *AddCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	return a.run(os.Stdout, cfg.Book.Path)
}

// run adds the contact against the given book file, enabling testable wiring.
func (a *AddCmd) run(w io.Writer, path string) error {
	b, err := loadBook(path)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	c, err := contact.New(a.Name, a.Phone, a.Birthday)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	b.AddRecord(c)
	if err := codec.Save(path, b); err != nil {
		return fmt.Errorf("add: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Saved %s\n", c.Name())
	return nil
}

// ViewCmd prints the whole book.
type ViewCmd struct{}

// Run executes the view command.
func (v *ViewCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("view: %w", err)
	}
	return v.run(os.Stdout, cfg.Book.Path)
}

func (v *ViewCmd) run(w io.Writer, path string) error {
	b, err := loadBook(path)
	if err != nil {
		return fmt.Errorf("view: %w", err)
	}
	if b.Len() == 0 {
		_, _ = fmt.Fprintln(w, "The address book is empty.")
		return nil
	}
	_, _ = fmt.Fprintln(w, b)
	return nil
}

// FindCmd looks up one contact by exact name.
type FindCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes the find command.
func (f *FindCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}
	return f.run(os.Stdout, cfg.Book.Path, time.Now())
}

func (f *FindCmd) run(w io.Writer, path string, now time.Time) error {
	b, err := loadBook(path)
	if err != nil {
		return fmt.Errorf("find: %w", err)
	}
	c, ok := b.Find(f.Name)
	if !ok {
		return fmt.Errorf("find: no contact named %q", f.Name)
	}
	_, _ = fmt.Fprintln(w, c)
	if countdown, err := c.Countdown(now); err == nil {
		_, _ = fmt.Fprintln(w, countdown)
	}
	return nil
}

// SearchCmd matches contacts by partial name or phone substring.
type SearchCmd struct {
	Query string `arg:"" help:"Search query."`
}

// Run executes the search command.
func (s *SearchCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	return s.run(os.Stdout, cfg.Book.Path)
}

func (s *SearchCmd) run(w io.Writer, path string) error {
	b, err := loadBook(path)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	matches := b.Search(s.Query)
	if len(matches) == 0 {
		_, _ = fmt.Fprintln(w, "No matching contacts found.")
		return nil
	}
	for _, m := range matches {
		_, _ = fmt.Fprintln(w, m)
	}
	return nil
}

// EditCmd replaces a phone number on an existing contact.
type EditCmd struct {
	Name string `arg:"" help:"Contact name."`
	Old  string `arg:"" help:"Current phone number."`
	New  string `arg:"" help:"Replacement phone number."`
}

// Run executes the edit command.
func (e *EditCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	return e.run(os.Stdout, cfg.Book.Path)
}

func (e *EditCmd) run(w io.Writer, path string) error {
	b, err := loadBook(path)
	if err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	c, ok := b.Find(e.Name)
	if !ok {
		return fmt.Errorf("edit: no contact named %q", e.Name)
	}
	if err := c.EditPhone(e.Old, e.New); err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	if err := codec.Save(path, b); err != nil {
		return fmt.Errorf("edit: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Updated %s\n", c.Name())
	return nil
}

// DeleteCmd removes a contact. Deleting an absent name is not an error.
type DeleteCmd struct {
	Name string `arg:"" help:"Contact name."`
}

// Run executes the delete command.
func (d *DeleteCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return d.run(os.Stdout, cfg.Book.Path)
}

func (d *DeleteCmd) run(w io.Writer, path string) error {
	b, err := loadBook(path)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	b.Delete(d.Name)
	if err := codec.Save(path, b); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Deleted %s\n", d.Name)
	return nil
}

// BrowseCmd opens the full-screen pager. Requires a TTY.
type BrowseCmd struct{}

// Run executes the browse command.
func (b *BrowseCmd) Run() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	bk, err := loadBook(cfg.Book.Path)
	if err != nil {
		return fmt.Errorf("browse: %w", err)
	}
	return browse.Run(bk.Pages(cfg.Display.PageSize))
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("rolodex"),
		kong.Description("A console personal contact manager."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	if err := ctx.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}
