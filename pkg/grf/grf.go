// Package grf reads Ragnarok Online GRF 0x200 archives.
package grf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Faultbox/midgard-nav/pkg/encoding"
)

// Magic opens every GRF header.
const Magic = "Master of Magic"

const (
	// HeaderSize is the on-disk header length. Table and entry offsets are
	// relative to its end.
	HeaderSize = 46

	// Version200 is the only table layout supported.
	Version200 = 0x200

	entryFixedSize = 17
)

// Entry flags.
const (
	FlagFile      = 0x01
	FlagMixCrypt  = 0x02
	FlagHeaderDES = 0x04
)

var (
	ErrInvalidMagic       = errors.New("invalid GRF magic")
	ErrUnsupportedVersion = errors.New("unsupported GRF version")
	ErrCorruptTable       = errors.New("corrupt GRF file table")
	ErrNotFound           = errors.New("file not found in archive")
	ErrEncrypted          = errors.New("encrypted entries are not supported")
)

// Header is the fixed GRF header.
type Header struct {
	Magic         [15]byte
	EncryptionKey [15]byte
	TableOffset   uint32
	Seed          uint32
	FileCount     uint32
	Version       uint32
}

// Entries returns the real entry count, which the format stores offset by
// seed+7.
func (h Header) Entries() int {
	n := int64(h.FileCount) - int64(h.Seed) - 7
	if n < 0 {
		return 0
	}
	return int(n)
}

// Entry describes one file in the archive.
type Entry struct {
	Name             string
	CompressedSize   uint32
	AlignedSize      uint32
	UncompressedSize uint32
	Flags            uint8
	Offset           uint32
}

// Archive is an opened GRF. Reads go through an io.ReaderAt, so an Archive
// may be shared by goroutines.
type Archive struct {
	r       io.ReaderAt
	closer  io.Closer
	header  Header
	entries map[string]*Entry
}

// Open opens a GRF file on disk.
func Open(path string) (*Archive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	a, err := NewReader(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	a.closer = f
	return a, nil
}

// NewReader reads the header and file table from r.
func NewReader(r io.ReaderAt) (*Archive, error) {
	a := &Archive{r: r, entries: make(map[string]*Entry)}
	if err := a.readHeader(); err != nil {
		return nil, err
	}
	if err := a.readFileTable(); err != nil {
		return nil, err
	}
	return a, nil
}

// Close releases the underlying file, if Open created one.
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	return err
}

// Header returns the archive header.
func (a *Archive) Header() Header { return a.header }

func (a *Archive) readHeader() error {
	sr := io.NewSectionReader(a.r, 0, HeaderSize)
	if err := binary.Read(sr, binary.LittleEndian, &a.header); err != nil {
		return fmt.Errorf("reading header: %w", err)
	}
	if string(a.header.Magic[:]) != Magic {
		return ErrInvalidMagic
	}
	if a.header.Version != Version200 {
		return fmt.Errorf("%w: 0x%x", ErrUnsupportedVersion, a.header.Version)
	}
	return nil
}

func (a *Archive) readFileTable() error {
	base := int64(a.header.TableOffset) + HeaderSize

	var sizes [8]byte
	if _, err := a.r.ReadAt(sizes[:], base); err != nil {
		return fmt.Errorf("reading table sizes: %w", err)
	}
	compressed := binary.LittleEndian.Uint32(sizes[0:])
	uncompressed := binary.LittleEndian.Uint32(sizes[4:])

	zr, err := zlib.NewReader(io.NewSectionReader(a.r, base+8, int64(compressed)))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptTable, err)
	}
	defer zr.Close()

	table := make([]byte, uncompressed)
	if _, err := io.ReadFull(zr, table); err != nil {
		return fmt.Errorf("%w: %v", ErrCorruptTable, err)
	}

	off := 0
	for i := 0; i < a.header.Entries(); i++ {
		end := bytes.IndexByte(table[off:], 0)
		if end < 0 || off+end+1+entryFixedSize > len(table) {
			return fmt.Errorf("%w: entry %d truncated", ErrCorruptTable, i)
		}
		name := encoding.CString(table[off : off+end])
		off += end + 1

		e := &Entry{
			Name:             encoding.NormalizePath(name),
			CompressedSize:   binary.LittleEndian.Uint32(table[off:]),
			AlignedSize:      binary.LittleEndian.Uint32(table[off+4:]),
			UncompressedSize: binary.LittleEndian.Uint32(table[off+8:]),
			Flags:            table[off+12],
			Offset:           binary.LittleEndian.Uint32(table[off+13:]),
		}
		off += entryFixedSize

		// Directory entries carry no data.
		if e.Flags&FlagFile != 0 {
			a.entries[e.Name] = e
		}
	}
	return nil
}

// Len returns the number of files.
func (a *Archive) Len() int { return len(a.entries) }

// List returns all file paths, sorted.
func (a *Archive) List() []string {
	out := make([]string, 0, len(a.entries))
	for name := range a.entries {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Contains reports whether path names a file in the archive.
func (a *Archive) Contains(path string) bool {
	_, ok := a.entries[encoding.NormalizePath(path)]
	return ok
}

// Stat returns the entry for path.
func (a *Archive) Stat(path string) (Entry, error) {
	e, ok := a.entries[encoding.NormalizePath(path)]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	return *e, nil
}

// Read returns the decompressed contents of path.
func (a *Archive) Read(path string) ([]byte, error) {
	e, ok := a.entries[encoding.NormalizePath(path)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if e.Flags&(FlagMixCrypt|FlagHeaderDES) != 0 {
		return nil, fmt.Errorf("%w: %s", ErrEncrypted, path)
	}

	section := io.NewSectionReader(a.r, int64(e.Offset)+HeaderSize, int64(e.CompressedSize))
	if e.CompressedSize == e.UncompressedSize {
		data := make([]byte, e.UncompressedSize)
		if _, err := io.ReadFull(section, data); err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		return data, nil
	}

	zr, err := zlib.NewReader(section)
	if err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	defer zr.Close()

	data := make([]byte, e.UncompressedSize)
	if _, err := io.ReadFull(zr, data); err != nil {
		return nil, fmt.Errorf("decompressing %s: %w", path, err)
	}
	return data, nil
}
