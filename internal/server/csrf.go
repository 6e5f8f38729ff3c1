package server

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"time"
)

// Tokens are stateless:
//
//	base64url( nonce | unixMicro | HMAC_SHA256(secret, nonce+unixMicro) )
//
// Verification checks the signature and that the timestamp lies within
// maxAge (and at most a minute in the future).
const (
	nonceBytes = 16
	tsBytes    = 8
	tokenBytes = nonceBytes + tsBytes + sha256.Size

	// DefaultCSRFMaxAge bounds how long a rendered form stays postable.
	DefaultCSRFMaxAge = 2 * time.Hour
	maxClockSkew      = time.Minute
)

// ErrCSRFSecretTooShort is returned for secrets under 16 bytes.
var ErrCSRFSecretTooShort = errors.New("server: csrf secret must be at least 16 bytes")

// CSRF issues and verifies form tokens.
type CSRF struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// NewCSRF builds a token guard. An empty secret generates a random per-process
// key, so tokens do not survive a restart.
func NewCSRF(secret string, maxAge time.Duration) (*CSRF, error) {
	key := []byte(secret)
	switch {
	case secret == "":
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, err
		}
	case len(key) < 16:
		return nil, ErrCSRFSecretTooShort
	}
	if maxAge <= 0 {
		maxAge = DefaultCSRFMaxAge
	}
	return &CSRF{secret: key, maxAge: maxAge, now: time.Now}, nil
}

// Generate creates a new token. Call once per form render.
func (c *CSRF) Generate() (string, error) {
	nonce := make([]byte, nonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}
	ts := make([]byte, tsBytes)
	binary.BigEndian.PutUint64(ts, uint64(c.now().UnixMicro()))

	buf := make([]byte, 0, tokenBytes)
	buf = append(buf, nonce...)
	buf = append(buf, ts...)
	buf = append(buf, c.sign(nonce, ts)...)
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Verify reports whether tok passes the signature and age checks.
func (c *CSRF) Verify(tok string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil || len(raw) != tokenBytes {
		return false
	}
	nonce := raw[:nonceBytes]
	ts := raw[nonceBytes : nonceBytes+tsBytes]
	sig := raw[nonceBytes+tsBytes:]

	issued := time.UnixMicro(int64(binary.BigEndian.Uint64(ts)))
	now := c.now()
	if now.Sub(issued) > c.maxAge || issued.Sub(now) > maxClockSkew {
		return false
	}
	return hmac.Equal(sig, c.sign(nonce, ts))
}

func (c *CSRF) sign(nonce, ts []byte) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write(nonce)
	mac.Write(ts)
	return mac.Sum(nil)
}
