package extension

import (
	"strings"

	"github.com/google/uuid"
)

// ID is the opaque stable identifier of one installed extension. Ids are 32
// characters drawn from the 'a'-'p' alphabet (hex digits remapped), the same
// shape Chrome assigns.
type ID string

const idLength = 32

const extensionScheme = "chrome-extension://"

// GenerateID returns a fresh random extension id.
func GenerateID() ID {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	b := make([]byte, idLength)
	for i := 0; i < idLength; i++ {
		c := hex[i]
		if c >= 'a' {
			b[i] = c - 'a' + 'k' // a-f -> k-p
		} else {
			b[i] = c - '0' + 'a' // 0-9 -> a-j
		}
	}
	return ID(b)
}

// Valid reports whether id has the canonical 32-char a-p form.
func (id ID) Valid() bool {
	if len(id) != idLength {
		return false
	}
	for i := 0; i < idLength; i++ {
		if id[i] < 'a' || id[i] > 'p' {
			return false
		}
	}
	return true
}

// IDFromSourceURL extracts the extension id from a chrome-extension:// URL.
// Returns false for any other scheme or a malformed host.
func IDFromSourceURL(source string) (ID, bool) {
	if !strings.HasPrefix(source, extensionScheme) {
		return "", false
	}
	rest := source[len(extensionScheme):]
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	id := ID(rest)
	if !id.Valid() {
		return "", false
	}
	return id, true
}

// BaseURL returns the chrome-extension origin for id, with a trailing slash.
func (id ID) BaseURL() string {
	return extensionScheme + string(id) + "/"
}
