// Package book implements the address book: contacts keyed by name, with a
// stable display order held explicitly because Go maps do not iterate
// deterministically.
package book

import (
	"fmt"
	"strings"

	"rolodex/internal/contact"
)

// Book maps contact names to contacts. The key is always derived from the
// record's own name. Display order is insertion order; overwriting keeps the
// original position.
type Book struct {
	records map[string]*contact.Contact
	order   []string
}

// New returns an empty address book.
func New() *Book {
	return &Book{records: make(map[string]*contact.Contact)}
}

// Len returns the number of contacts.
func (b *Book) Len() int { return len(b.order) }

// AddRecord inserts the contact keyed by its name. An existing entry with
// the same name is silently replaced, keeping its display position.
func (b *Book) AddRecord(c *contact.Contact) {
	name := c.Name()
	if _, ok := b.records[name]; !ok {
		b.order = append(b.order, name)
	}
	b.records[name] = c
}

// Find returns the contact with the exact, case-sensitive name.
func (b *Book) Find(name string) (*contact.Contact, bool) {
	c, ok := b.records[name]
	return c, ok
}

// Delete removes the named contact. Deleting an absent name is a no-op.
func (b *Book) Delete(name string) {
	if _, ok := b.records[name]; !ok {
		return
	}
	delete(b.records, name)
	for i, n := range b.order {
		if n == name {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Contacts returns the contacts in display order.
func (b *Book) Contacts() []*contact.Contact {
	out := make([]*contact.Contact, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.records[name])
	}
	return out
}

// Search returns every contact whose name contains the query
// case-insensitively, plus one entry per phone containing the query as an
// exact substring. A contact matching on both the name and a phone appears
// more than once; the duplicates are part of the contract and are not
// collapsed.
func (b *Book) Search(query string) []*contact.Contact {
	lower := strings.ToLower(query)
	var matches []*contact.Contact
	for _, name := range b.order {
		rec := b.records[name]
		if strings.Contains(strings.ToLower(name), lower) {
			matches = append(matches, rec)
		}
		for _, phone := range rec.Phones() {
			if strings.Contains(phone, query) {
				matches = append(matches, rec)
			}
		}
	}
	return matches
}

// Pages renders the book as pages of up to pageSize newline-terminated
// "name: record" lines, with a final partial page for any remainder. It
// works on a snapshot of the current contents, so calling it again restarts
// from the first page. A pageSize of zero or less yields no pages rather
// than one unbounded page.
func (b *Book) Pages(pageSize int) []string {
	if pageSize <= 0 {
		return nil
	}
	var pages []string
	var page strings.Builder
	lines := 0
	for _, name := range b.order {
		fmt.Fprintf(&page, "%s: %s\n", name, b.records[name])
		lines++
		if lines >= pageSize {
			pages = append(pages, page.String())
			page.Reset()
			lines = 0
		}
	}
	if page.Len() > 0 {
		pages = append(pages, page.String())
	}
	return pages
}

// String renders the whole book in display order.
func (b *Book) String() string {
	entries := make([]string, 0, len(b.order))
	for _, name := range b.order {
		entries = append(entries, fmt.Sprintf("%s: %s", name, b.records[name]))
	}
	return "{\n" + strings.Join(entries, ",\n") + "\n}"
}
