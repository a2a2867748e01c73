// Package cryptox holds the toolkit's cryptography: the persisted at-rest key,
// AES-GCM sealing of stored secrets, the one-way login hash, password strength
// scoring and password generation.
//
// Losing the key file makes every stored secret unreadable. There is no
// recovery path; treat the key file with the same care as the store itself.
package cryptox

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/pstoolkit/internal/common"
	"github.com/dmitrijs2005/pstoolkit/internal/filex"
)

// KeySize is the AES-256 key length stored in the key file.
const KeySize = 32

var keyEncoding = base64.URLEncoding

// LoadOrCreateKey reads the at-rest key from path, generating and persisting a
// new random key on first run. The file holds the URL-safe base64 form of the
// key and is never rewritten once it exists.
func LoadOrCreateKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return createKey(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read key file: %w", err)
	}
	return decodeKey(data)
}

func createKey(path string) ([]byte, error) {
	if err := filex.EnsureParentDir(path); err != nil {
		return nil, err
	}

	key := common.GenerateRandByteArray(KeySize)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create key file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write([]byte(keyEncoding.EncodeToString(key))); err != nil {
		return nil, fmt.Errorf("write key file: %w", err)
	}
	return key, nil
}

func decodeKey(data []byte) ([]byte, error) {
	key, err := keyEncoding.DecodeString(string(bytes.TrimSpace(data)))
	if err != nil {
		return nil, fmt.Errorf("decode key file: %w", err)
	}
	if len(key) != KeySize {
		return nil, fmt.Errorf("key file holds %d bytes, want %d", len(key), KeySize)
	}
	return key, nil
}

// Service seals and opens stored secrets with AES-GCM under a single key.
// It is built once at startup and handed to the components that need it.
type Service struct {
	aead cipher.AEAD
}

// NewService constructs a Service for the given AES key (16, 24 or 32 bytes).
func NewService(key []byte) (*Service, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	return &Service{aead: aesgcm}, nil
}

// Encrypt seals plaintext under a fresh random nonce and returns the URL-safe
// base64 encoding of nonce||ciphertext. Two calls with the same plaintext
// produce different outputs.
func (s *Service) Encrypt(plaintext string) (string, error) {
	nonce := common.GenerateRandByteArray(s.aead.NonceSize())
	sealed := s.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.URLEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Any malformed, truncated, tampered or foreign-key
// input yields an error wrapping common.ErrDecryption.
func (s *Service) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.URLEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: bad encoding: %v", common.ErrDecryption, err)
	}

	ns := s.aead.NonceSize()
	if len(raw) < ns+s.aead.Overhead() {
		return "", fmt.Errorf("%w: ciphertext too short", common.ErrDecryption)
	}

	plaintext, err := s.aead.Open(nil, raw[:ns], raw[ns:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrDecryption, err)
	}
	return string(plaintext), nil
}
