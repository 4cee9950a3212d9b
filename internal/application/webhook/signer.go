package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

var ErrNoSecret = errors.New("webhook secret not configured")

// Signer computes a base64-encoded HMAC-SHA256 over the raw payload bytes.
// It fails closed: a delivery is never attempted without a valid signature.
type Signer struct {
	Secret []byte
}

func NewSigner(secret string) *Signer {
	return &Signer{Secret: []byte(secret)}
}

func (s *Signer) Sign(payload []byte) (string, error) {
	if len(s.Secret) == 0 {
		return "", ErrNoSecret
	}

	mac := hmac.New(sha256.New, s.Secret)
	mac.Write(payload)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

func (s *Signer) Verify(payload []byte, signature string) bool {
	expected, err := s.Sign(payload)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(signature))
}
