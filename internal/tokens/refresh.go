package tokens

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// 32 bytes of entropy; the encoded value is only ever used as a lookup key.
const refreshTokenBytes = 32

// MintRefreshToken generates an opaque refresh token value. It deliberately
// carries no claims or signature: revocation works by deleting the stored
// record, so there is nothing to verify offline.
func MintRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("couldn't read random bytes: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
