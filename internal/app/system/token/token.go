// internal/app/system/token/token.go

// Package token mints the opaque bearer values handed out on successful
// login. No endpoint verifies them yet; they exist so clients have
// something stable to hold on to.
package token

import (
	"time"

	"github.com/dalemusser/flockhub/internal/app/system/identity"
	"github.com/gorilla/securecookie"
)

const tokenName = "flockhub_token"

// Minter encodes login tokens with securecookie.
type Minter struct {
	sc *securecookie.SecureCookie
}

// NewMinter builds a minter from the configured signing key.
func NewMinter(key string) *Minter {
	return &Minter{sc: securecookie.New([]byte(key), nil)}
}

// Mint produces a signed token for the resolved identity.
func (m *Minter) Mint(rec identity.Record) (string, error) {
	return m.sc.Encode(tokenName, map[string]string{
		"id":        rec.ID.Hex(),
		"role":      rec.Role.String(),
		"issued_at": time.Now().UTC().Format(time.RFC3339),
	})
}
