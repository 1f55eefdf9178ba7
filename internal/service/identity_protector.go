package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"golang.org/x/crypto/blake2b"
)

// IdentityVault implements ports.IdentityProtector using AES-256-GCM for
// storage and a keyed BLAKE2b-256 hash as a lookup fingerprint.
type IdentityVault struct {
	key            []byte // 32-byte key for AES-256
	fingerprintKey []byte
}

// NewIdentityVault creates a vault from hex-encoded keys.
// hexKey must be a 64-character hex string (32 bytes decoded).
// An empty fingerprint key reuses the encryption key.
func NewIdentityVault(hexKey, hexFingerprintKey string) (*IdentityVault, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("decoding identity key: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("identity key must be 32 bytes, got %d", len(key))
	}

	fpKey := key
	if hexFingerprintKey != "" {
		fpKey, err = hex.DecodeString(hexFingerprintKey)
		if err != nil {
			return nil, fmt.Errorf("decoding fingerprint key: %w", err)
		}
		if len(fpKey) == 0 || len(fpKey) > blake2b.Size {
			return nil, fmt.Errorf("fingerprint key must be 1..%d bytes, got %d", blake2b.Size, len(fpKey))
		}
	}

	return &IdentityVault{key: key, fingerprintKey: fpKey}, nil
}

// Seal encrypts plaintext and returns it with its fingerprint.
func (v *IdentityVault) Seal(plaintext string) (string, string, error) {
	ciphertext, err := v.encrypt(plaintext)
	if err != nil {
		return "", "", err
	}
	fingerprint, err := v.Fingerprint(plaintext)
	if err != nil {
		return "", "", err
	}
	return ciphertext, fingerprint, nil
}

// Fingerprint returns the hex keyed BLAKE2b-256 digest of plaintext.
func (v *IdentityVault) Fingerprint(plaintext string) (string, error) {
	h, err := blake2b.New256(v.fingerprintKey)
	if err != nil {
		return "", fmt.Errorf("creating fingerprint hash: %w", err)
	}
	h.Write([]byte(plaintext))
	return hex.EncodeToString(h.Sum(nil)), nil
}

// encrypt returns hex-encoded nonce + ciphertext.
func (v *IdentityVault) encrypt(plaintext string) (string, error) {
	aesGCM, err := v.gcm()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}

	ciphertext := aesGCM.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(ciphertext), nil
}

// Open decrypts a value produced by Seal.
func (v *IdentityVault) Open(ciphertextHex string) (string, error) {
	ciphertext, err := hex.DecodeString(ciphertextHex)
	if err != nil {
		return "", fmt.Errorf("decoding ciphertext: %w", err)
	}

	aesGCM, err := v.gcm()
	if err != nil {
		return "", err
	}

	nonceSize := aesGCM.NonceSize()
	if len(ciphertext) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertext := ciphertext[:nonceSize], ciphertext[nonceSize:]
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("decrypting: %w", err)
	}

	return string(plaintext), nil
}

func (v *IdentityVault) gcm() (cipher.AEAD, error) {
	block, err := aes.NewCipher(v.key)
	if err != nil {
		return nil, fmt.Errorf("creating cipher: %w", err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("creating GCM: %w", err)
	}
	return aesGCM, nil
}
