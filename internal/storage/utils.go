package storage

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashFileName derives a stable file name from content
//
// The same content always maps to the same name.
func HashFileName(content, extension string) string {
	sum := sha256.Sum256([]byte(content))
	return hex.EncodeToString(sum[:]) + normalizeExtension(extension)
}

func normalizeExtension(extension string) string {
	if extension != "" && extension[0] != '.' {
		return "." + extension
	}
	return extension
}

// sizeWriter tracks the total number of bytes written
type sizeWriter struct {
	size int64
}

// Write implements io.Writer interface
func (sw *sizeWriter) Write(p []byte) (int, error) {
	n := len(p)
	sw.size += int64(n)
	return n, nil
}

// Size returns the total number of bytes written
func (sw *sizeWriter) Size() int64 {
	return sw.size
}

// NewSizeWriter creates a new SizeWriter instance
func NewSizeWriter() *sizeWriter {
	return &sizeWriter{}
}
