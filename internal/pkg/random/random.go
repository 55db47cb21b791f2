package random

import (
	"crypto/rand"
	"encoding/base64"
)

// URLSafeToken returns a URL-safe token built from n random bytes, used for
// session ids, bearer tokens and verification tokens.
func URLSafeToken(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
