// Package encoding converts the EUC-KR text found in Ragnarok Online data files.
package encoding

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// DecodeEUCKR converts EUC-KR bytes to a UTF-8 string.
// Bytes that do not decode are returned unchanged.
func DecodeEUCKR(data []byte) string {
	out, _, err := transform.Bytes(korean.EUCKR.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(out)
}

// EncodeEUCKR converts a UTF-8 string to EUC-KR bytes.
func EncodeEUCKR(s string) []byte {
	out, _, err := transform.Bytes(korean.EUCKR.NewEncoder(), []byte(s))
	if err != nil {
		return []byte(s)
	}
	return out
}

// CString decodes a NUL-terminated EUC-KR string. Anything after the first
// NUL is ignored.
func CString(data []byte) string {
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	return DecodeEUCKR(data)
}

// NormalizePath folds an archive path for lookup: forward slashes, lower case.
func NormalizePath(path string) string {
	return strings.ToLower(strings.ReplaceAll(path, "\\", "/"))
}
