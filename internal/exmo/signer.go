package exmo

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
)

// Sign computes the HMAC-SHA512 signature the exchange expects in the Sign
// header: the secret key keys the MAC, the canonical URL-encoded payload is
// the message, and the digest is rendered as lowercase hex. The payload must
// be byte-identical to the request body that is actually transmitted.
func Sign(secretKey []byte, payload string) string {
	mac := hmac.New(sha512.New, secretKey)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}
