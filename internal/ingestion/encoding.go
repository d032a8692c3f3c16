package ingestion

import (
	"bytes"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

var bomUTF8 = []byte{0xEF, 0xBB, 0xBF}

// DecodeText turns an uploaded file into text. UTF-8 is tried first; when the
// bytes are not clean UTF-8 (Excel and OneDrive save as Windows-1252) they
// are re-decoded as Windows-1252. Returns the text and the encoding used.
func DecodeText(data []byte) (string, string) {
	data = bytes.TrimPrefix(data, bomUTF8)

	if utf8.Valid(data) && !bytes.ContainsRune(data, utf8.RuneError) {
		return string(data), EncodingUTF8
	}

	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "\uFFFD"), EncodingUTF8
	}
	return string(decoded), EncodingWindows1252
}
