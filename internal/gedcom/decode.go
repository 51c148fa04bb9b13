// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gedcom

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNotText is returned when file content cannot be decoded as text.
var ErrNotText = errors.New("gedcom: input is not decodable as text")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

/*
Decode turns raw GEDCOM file bytes into text.

  - A UTF-8 or UTF-16 byte order mark selects that encoding.
  - Otherwise valid UTF-8 is used as is.
  - Anything else is read as Windows-1252, the "ANSI" charset older
    genealogy programs write.

Content that still contains NUL bytes after decoding is binary and yields
[ErrNotText].
*/
func Decode(data []byte) (string, error) {
	var text string

	switch {
	case bytes.HasPrefix(data, bomUTF8), bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
		decoded, _, err := transform.Bytes(decoder, data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNotText, err)
		}
		text = string(decoded)
	case utf8.Valid(data):
		text = string(data)
	default:
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrNotText, err)
		}
		text = string(decoded)
	}

	if strings.ContainsRune(text, 0) {
		return "", ErrNotText
	}
	return text, nil
}

// ReadFile reads and decodes a GEDCOM file.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("gedcom: read %s: %w", path, err)
	}
	text, err := Decode(data)
	if err != nil {
		return "", fmt.Errorf("gedcom: decode %s: %w", path, err)
	}
	return text, nil
}

// WriteFile writes generated GEDCOM text with a final newline.
func WriteFile(path, text string) error {
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("gedcom: write %s: %w", path, err)
	}
	return nil
}
