// Package textutil tells text files from binary ones before they are scanned
// for style declarations.
package textutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// BinarySniffLength is the maximum number of bytes scanned for null-byte
// detection, the same window Git uses.
const BinarySniffLength = 8000

// IsBinary returns true if data contains a null byte within the first
// BinarySniffLength bytes. Empty data is not binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	sniff := data
	if len(sniff) > BinarySniffLength {
		sniff = sniff[:BinarySniffLength]
	}

	return bytes.IndexByte(sniff, 0) >= 0
}

// IsBinaryFile reads at most BinarySniffLength bytes of path and applies
// IsBinary to them.
func IsBinaryFile(path string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	buf := make([]byte, BinarySniffLength)

	n, err := io.ReadFull(file, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("sniff %s: %w", path, err)
	}

	return IsBinary(buf[:n]), nil
}
