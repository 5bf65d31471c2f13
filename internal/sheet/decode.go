package sheet

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// Decode converts raw object bytes to text. A leading UTF-8 byte-order mark
// is dropped; invalid sequences become U+FFFD.
func Decode(b []byte) (string, error) {
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: decode utf-8: %v", ErrMalformedInput, err)
	}
	return string(out), nil
}

// DecodeLines decodes b and splits it on \n, \r\n and \r. A trailing line
// break does not produce an empty final line.
func DecodeLines(b []byte) ([]string, error) {
	text, err := Decode(b)
	if err != nil {
		return nil, err
	}
	return SplitLines(text), nil
}

// SplitLines splits text into lines using universal newlines.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = strings.TrimSuffix(text, "\n")
	return strings.Split(text, "\n")
}
