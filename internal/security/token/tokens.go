package tokens

import (
	"crypto/sha256"
	"encoding/base64"
)

// SHA256Base64URL devuelve sha256(input) en base64url sin padding.
// Es la forma en que las sesiones se indexan en DB: nunca guardamos el
// token crudo.
func SHA256Base64URL(s string) string {
	sum := sha256.Sum256([]byte(s))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
