package ingest

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	apperrors "bsplan/internal/errors"
)

// Encoding names as reported in the run summary.
const (
	EncodingUTF8SIG     = "utf-8-sig"
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Source is one decoded export file, split into physical lines.
type Source struct {
	Path     string
	Encoding string
	Lines    []string
}

// Reader loads export files. BetterStreet exports arrive in whatever
// encoding the browser or mail client produced, so decoding tries UTF-8
// with a byte order mark first, then plain UTF-8, then windows-1252.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a reader.
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger}
}

// ReadFile loads and decodes one export file.
func (r *Reader) ReadFile(ctx context.Context, path string) (*Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewNotFoundError("input file " + path)
		}
		return nil, apperrors.NewStorageError("reading input file "+path, err)
	}

	text, encodingName, err := Decode(data)
	if err != nil {
		return nil, apperrors.NewEncodingError("decoding input file "+path, err).
			WithContext("path", path)
	}

	src := &Source{
		Path:     path,
		Encoding: encodingName,
		Lines:    splitLines(text),
	}

	r.logger.InfoContext(ctx, "input file decoded",
		"path", path,
		"encoding", src.Encoding,
		"bytes", len(data),
		"lines", len(src.Lines),
	)
	return src, nil
}

// Decode converts raw export bytes to text. Valid UTF-8 is taken as-is,
// with a leading byte order mark stripped when present; anything else is
// decoded as windows-1252. Bytes the code page leaves undefined make the
// whole decode fail rather than turn into replacement runes.
func Decode(data []byte) (string, string, error) {
	if bytes.HasPrefix(data, utf8BOM) {
		if rest := data[len(utf8BOM):]; utf8.Valid(rest) {
			return string(rest), EncodingUTF8SIG, nil
		}
	} else if utf8.Valid(data) {
		return string(data), EncodingUTF8, nil
	}

	decoded, err := decodeWindows1252(data)
	if err != nil {
		return "", "", err
	}
	return decoded, EncodingWindows1252, nil
}

// decodeWindows1252 decodes strictly. The code page defines no mapping for
// 0x81, 0x8D, 0x8F, 0x90 and 0x9D (charmap follows the web-compat tables
// and would give C1 controls), and a file containing one of those is not a
// text export in any of the supported encodings.
func decodeWindows1252(data []byte) (string, error) {
	var sb strings.Builder
	sb.Grow(len(data))
	for i, b := range data {
		switch b {
		case 0x81, 0x8D, 0x8F, 0x90, 0x9D:
			return "", fmt.Errorf("byte 0x%02x at offset %d is undefined in windows-1252", b, i)
		}
		sb.WriteRune(charmap.Windows1252.DecodeByte(b))
	}
	return sb.String(), nil
}

// splitLines splits decoded text into physical lines without a trailing
// phantom line for a final newline. CR, LF and CRLF all terminate lines.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}
