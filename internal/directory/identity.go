package directory

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// Identity is a registered account.
type Identity struct {
	// ID is generated once at creation and never reused.
	ID string `json:"id"`

	// Email is the lookup key. Matching is exact and case-sensitive.
	Email string `json:"email"`

	// DisplayName is the capitalized email local-part, fixed at creation.
	DisplayName string `json:"name"`

	// Avatar is an encoded image (data URL); nil until set.
	Avatar *string `json:"avatar"`

	// CreatedAt never changes after the first write.
	CreatedAt time.Time `json:"createdAt"`

	// LastLoginAt moves forward on every login.
	LastLoginAt time.Time `json:"lastLogin"`
}

// LocalPart returns the part of email before the first '@'.
func LocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

// DisplayNameFor capitalizes the local-part of email ("ana@x.com" → "Ana").
// Only the first rune changes; the rest is left as typed.
func DisplayNameFor(email string) string {
	local := LocalPart(email)
	r, size := utf8.DecodeRuneInString(local)
	if r == utf8.RuneError {
		return local
	}
	return string(unicode.ToTitle(r)) + local[size:]
}

// valid reports whether id looks like a record written by this package.
func (id Identity) valid() bool {
	return id.ID != "" && id.Email != ""
}
