package grf

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/Faultbox/midgard-nav/pkg/encoding"
)

// Write builds a 0x200 archive holding files. Names are stored EUC-KR
// encoded in sorted order; contents are zlib-compressed unless that would
// leave their size unchanged, in which case they are stored raw.
func Write(w io.Writer, files map[string][]byte) error {
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var body, table bytes.Buffer
	for _, name := range names {
		raw := files[name]
		data, err := deflate(raw)
		if err != nil {
			return fmt.Errorf("compressing %s: %w", name, err)
		}
		if len(data) == len(raw) {
			data = raw
		}

		table.Write(encoding.EncodeEUCKR(name))
		table.WriteByte(0)
		var fixed [entryFixedSize]byte
		binary.LittleEndian.PutUint32(fixed[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(fixed[4:], uint32(len(data)))
		binary.LittleEndian.PutUint32(fixed[8:], uint32(len(raw)))
		fixed[12] = FlagFile
		binary.LittleEndian.PutUint32(fixed[13:], uint32(body.Len()))
		table.Write(fixed[:])
		body.Write(data)
	}

	packed, err := deflate(table.Bytes())
	if err != nil {
		return fmt.Errorf("compressing table: %w", err)
	}

	h := Header{
		TableOffset: uint32(body.Len()),
		FileCount:   uint32(len(names) + 7),
		Version:     Version200,
	}
	copy(h.Magic[:], Magic)

	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return err
	}
	if _, err := w.Write(body.Bytes()); err != nil {
		return err
	}
	var sizes [8]byte
	binary.LittleEndian.PutUint32(sizes[0:], uint32(len(packed)))
	binary.LittleEndian.PutUint32(sizes[4:], uint32(table.Len()))
	if _, err := w.Write(sizes[:]); err != nil {
		return err
	}
	_, err = w.Write(packed)
	return err
}

func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
