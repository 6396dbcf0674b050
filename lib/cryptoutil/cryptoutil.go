package cryptoutil

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

const KeySize = 32

var InvalidKeySize = fmt.Errorf("encryption key must be %d bytes", KeySize)
var InvalidCiphertext = fmt.Errorf("ciphertext is malformed")

// Cipher seals and opens the blobs we persist outside of process
// memory: portal credentials and cookie jars. AES-256-GCM with a
// random nonce prepended to the ciphertext, base64 on the wire so it
// can sit in a TEXT column.
type Cipher struct {
	aead cipher.AEAD
}

func NewCipher(key []byte) (Cipher, error) {
	if len(key) != KeySize {
		return Cipher{}, InvalidKeySize
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return Cipher{}, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return Cipher{}, err
	}
	return Cipher{aead: aead}, nil
}

func (c Cipher) Seal(plaintext []byte) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	_, err := io.ReadFull(rand.Reader, nonce)
	if err != nil {
		return "", err
	}
	sealed := c.aead.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

func (c Cipher) Open(encoded string) ([]byte, error) {
	sealed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	if len(sealed) < c.aead.NonceSize() {
		return nil, InvalidCiphertext
	}
	nonce := sealed[:c.aead.NonceSize()]
	plaintext, err := c.aead.Open(nil, nonce, sealed[c.aead.NonceSize():], nil)
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}
