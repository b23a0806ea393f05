package crypto

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key := DeriveKey("master-key")
	plaintext := []byte(`{"provider":"rateshop","token":"abc123"}`)

	ciphertext, err := Encrypt(plaintext, key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if bytes.Contains(ciphertext, plaintext) {
		t.Error("ciphertext contains plaintext")
	}

	decrypted, err := Decrypt(ciphertext, key)
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("round trip mismatch: got %q", decrypted)
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	ciphertext, err := Encrypt([]byte("secret"), DeriveKey("key-a"))
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if _, err := Decrypt(ciphertext, DeriveKey("key-b")); err == nil {
		t.Error("expected decryption with wrong key to fail")
	}
}

func TestDecrypt_TruncatedCiphertext(t *testing.T) {
	key := DeriveKey("master-key")
	if _, err := Decrypt([]byte("short"), key); err == nil {
		t.Error("expected truncated ciphertext to be rejected")
	}
}

func TestEncrypt_UniqueNonces(t *testing.T) {
	key := DeriveKey("master-key")
	a, err := Encrypt([]byte("same input"), key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	b, err := Encrypt([]byte("same input"), key)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two encryptions of the same input produced identical output")
	}
}
