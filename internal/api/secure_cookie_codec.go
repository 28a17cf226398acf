package api

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	sealedCookieVersion = "v1"
	sealedCookieAADBase = "teachflow.cookie."
	authCookiePurpose   = "auth"
)

var errInvalidSealedCookie = errors.New("invalid sealed cookie value")

// cookieSealer encrypts and authenticates cookie payloads with AES-GCM. The
// purpose string is bound as additional data so a value sealed for one cookie
// cannot be replayed as another.
type cookieSealer struct {
	aead cipher.AEAD
}

func newCookieSealer(secretKey []byte) (*cookieSealer, error) {
	if len(secretKey) == 0 {
		return nil, errors.New("cookie sealer secret key is required")
	}

	key := sha256.Sum256(append([]byte("teachflow.sealed-cookie.v1:"), secretKey...))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("init cookie cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init cookie aead: %w", err)
	}
	return &cookieSealer{aead: aead}, nil
}

func (sealer *cookieSealer) seal(purpose string, plaintext []byte) (string, error) {
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return "", errors.New("cookie purpose is required")
	}

	nonce := make([]byte, sealer.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate cookie nonce: %w", err)
	}
	payload := sealer.aead.Seal(nonce, nonce, plaintext, []byte(sealedCookieAADBase+purpose))
	return sealedCookieVersion + "." + base64.RawURLEncoding.EncodeToString(payload), nil
}

func (sealer *cookieSealer) open(purpose string, value string) ([]byte, error) {
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return nil, errors.New("cookie purpose is required")
	}

	version, encoded, found := strings.Cut(strings.TrimSpace(value), ".")
	if !found || version != sealedCookieVersion || encoded == "" {
		return nil, errInvalidSealedCookie
	}
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errInvalidSealedCookie
	}

	nonceSize := sealer.aead.NonceSize()
	if len(payload) <= nonceSize {
		return nil, errInvalidSealedCookie
	}
	plaintext, err := sealer.aead.Open(nil, payload[:nonceSize], payload[nonceSize:], []byte(sealedCookieAADBase+purpose))
	if err != nil {
		return nil, errInvalidSealedCookie
	}
	return plaintext, nil
}
