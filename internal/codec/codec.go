// Package codec persists an address book to an explicit binary format.
//
// Layout: a 4-byte magic "RLDX", one format-version byte, then a uvarint
// contact count. Each contact is its name (uvarint length plus bytes), a
// uvarint phone count with each phone framed the same way, and a presence
// byte followed, when set, by the framed birthday string. The format
// enumerates exactly the persisted fields instead of reflecting the
// in-memory types, so internal refactors cannot silently change the file.
package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"rolodex/internal/book"
	"rolodex/internal/contact"
)

// ErrCorrupt indicates a file that exists but cannot be decoded.
var ErrCorrupt = errors.New("codec: corrupt address book file")

var magic = [4]byte{'R', 'L', 'D', 'X'}

const formatVersion = 1

// maxStringLen bounds decoded string lengths so a corrupt length prefix
// cannot trigger a huge allocation.
const maxStringLen = 1 << 16

// Save writes the book to path, overwriting any existing file.
func Save(path string, b *book.Book) error {
	data := encode(b)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("codec: writing %s: %w", path, err)
	}
	return nil
}

// Load reads the book stored at path into a fresh Book; the caller's current
// book is never touched. A missing file surfaces fs.ErrNotExist through the
// error chain, and undecodable content surfaces ErrCorrupt.
func Load(path string) (*book.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("codec: reading %s: %w", path, err)
	}
	b, err := decode(data)
	if err != nil {
		return nil, fmt.Errorf("codec: decoding %s: %w", path, err)
	}
	return b, nil
}

// encode serializes the book in display order.
func encode(b *book.Book) []byte {
	var buf bytes.Buffer
	buf.Write(magic[:])
	buf.WriteByte(formatVersion)
	contacts := b.Contacts()
	writeUvarint(&buf, uint64(len(contacts)))
	for _, c := range contacts {
		writeString(&buf, c.Name())
		phones := c.Phones()
		writeUvarint(&buf, uint64(len(phones)))
		for _, p := range phones {
			writeString(&buf, p)
		}
		if birthday, ok := c.Birthday(); ok {
			buf.WriteByte(1)
			writeString(&buf, birthday)
		} else {
			buf.WriteByte(0)
		}
	}
	return buf.Bytes()
}

func decode(data []byte) (*book.Book, error) {
	r := bytes.NewReader(data)

	var header [5]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, fmt.Errorf("%w: short header", ErrCorrupt)
	}
	if !bytes.Equal(header[:4], magic[:]) {
		return nil, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	if header[4] != formatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrCorrupt, header[4])
	}

	count, err := readCount(r, "contact count")
	if err != nil {
		return nil, err
	}

	b := book.New()
	for i := uint64(0); i < count; i++ {
		name, err := readString(r, "name")
		if err != nil {
			return nil, err
		}

		phoneCount, err := readCount(r, "phone count")
		if err != nil {
			return nil, err
		}
		phones := make([]string, 0, phoneCount)
		for j := uint64(0); j < phoneCount; j++ {
			phone, err := readString(r, "phone")
			if err != nil {
				return nil, err
			}
			phones = append(phones, phone)
		}

		present, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: short birthday flag", ErrCorrupt)
		}
		birthday := ""
		switch present {
		case 0:
		case 1:
			if birthday, err = readString(r, "birthday"); err != nil {
				return nil, err
			}
		default:
			return nil, fmt.Errorf("%w: bad birthday flag %d", ErrCorrupt, present)
		}

		// Stored values pass through the same constructors as user input,
		// so a blob holding malformed fields decodes as corrupt.
		c, err := contact.New(name, phones, birthday)
		if err != nil {
			return nil, fmt.Errorf("%w: contact %q: %v", ErrCorrupt, name, err)
		}
		b.AddRecord(c)
	}

	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, r.Len())
	}
	return b, nil
}

func writeUvarint(buf *bytes.Buffer, v uint64) {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)
	buf.Write(tmp[:n])
}

func writeString(buf *bytes.Buffer, s string) {
	writeUvarint(buf, uint64(len(s)))
	buf.WriteString(s)
}

// readCount reads a uvarint element count, rejecting counts that could not
// possibly fit in the remaining input.
func readCount(r *bytes.Reader, what string) (uint64, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return 0, fmt.Errorf("%w: short %s", ErrCorrupt, what)
	}
	if n > uint64(r.Len()) {
		return 0, fmt.Errorf("%w: %s %d exceeds remaining input", ErrCorrupt, what, n)
	}
	return n, nil
}

func readString(r *bytes.Reader, what string) (string, error) {
	n, err := binary.ReadUvarint(r)
	if err != nil {
		return "", fmt.Errorf("%w: short %s length", ErrCorrupt, what)
	}
	if n > maxStringLen || n > uint64(r.Len()) {
		return "", fmt.Errorf("%w: %s length %d out of range", ErrCorrupt, what, n)
	}
	raw := make([]byte, n)
	if _, err := io.ReadFull(r, raw); err != nil {
		return "", fmt.Errorf("%w: short %s", ErrCorrupt, what)
	}
	return string(raw), nil
}
