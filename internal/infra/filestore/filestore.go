package filestore

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"regexp"
	"time"
)

// Backend is the object-storage capability the upload pipeline and the file
// delivery handler are written against. Put stores bytes under a key; URLFor
// resolves a key to a browser-deliverable URL, reporting ok=false when the
// object has no remote URL and must be served from the local copy instead.
type Backend interface {
	Put(key string, data []byte, contentType string) error
	URLFor(key string) (url string, ok bool)
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// SanitizeName reduces a caller-supplied filename to the character class
// [A-Za-z0-9_.-]. Path separators never survive, so a hostile name cannot
// escape the storage root.
func SanitizeName(name string) string {
	s := unsafeChars.ReplaceAllString(name, "")
	if s == "" {
		s = "upload"
	}
	// Keep the tail so the extension survives overly long names.
	if len(s) > 120 {
		s = s[len(s)-120:]
	}
	return s
}

// NewKey builds the physical name for one stored object: millisecond
// timestamp, random suffix, sanitized logical name. Concurrent uploads of
// the same filename never collide.
func NewKey(name string) string {
	buf := make([]byte, 4)
	rand.Read(buf)
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), hex.EncodeToString(buf), SanitizeName(name))
}
