package auth

import (
	"encoding/base64"
	"errors"
	"testing"
)

func TestSecretboxSealer_SealAndOpen(t *testing.T) {
	sealer := NewSecretboxSealer("secret")
	sealed, err := sealer.Seal("bearer-token")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if sealed == "" || sealed == "bearer-token" {
		t.Fatalf("unexpected sealed value: %q", sealed)
	}
	token, err := sealer.Open(sealed)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if token != "bearer-token" {
		t.Fatalf("unexpected token: %q", token)
	}
}

func TestSecretboxSealer_UsesFreshNonce(t *testing.T) {
	sealer := NewSecretboxSealer("secret")
	first, _ := sealer.Seal("token")
	second, _ := sealer.Seal("token")
	if first == second {
		t.Fatal("expected different ciphertexts for repeated seals")
	}
}

func TestSecretboxSealer_OpenInvalidBase64(t *testing.T) {
	sealer := NewSecretboxSealer("secret")
	if _, err := sealer.Open("not base64!"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSecretboxSealer_OpenTooShort(t *testing.T) {
	sealer := NewSecretboxSealer("secret")
	short := base64.StdEncoding.EncodeToString([]byte("short"))
	if _, err := sealer.Open(short); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSecretboxSealer_OpenWithOtherSecret(t *testing.T) {
	sealed, err := NewSecretboxSealer("secret").Seal("token")
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if _, err := NewSecretboxSealer("other").Open(sealed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSecretboxSealer_OpenTampered(t *testing.T) {
	sealer := NewSecretboxSealer("secret")
	sealed, _ := sealer.Seal("token")
	raw, _ := base64.StdEncoding.DecodeString(sealed)
	raw[len(raw)-1] ^= 0xff
	if _, err := sealer.Open(base64.StdEncoding.EncodeToString(raw)); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestSecretboxSealer_Name(t *testing.T) {
	if NewSecretboxSealer("secret").Name() != "secretbox" {
		t.Fatal("unexpected name")
	}
}

func TestTokenHolderSetAndClear(t *testing.T) {
	holder := NewTokenHolder()
	holder.Set("abc")
	if holder.Token() != "abc" || !holder.Authenticated() {
		t.Fatalf("unexpected token %q", holder.Token())
	}
	holder.Clear()
	if holder.Token() != "" || holder.Authenticated() {
		t.Fatal("expected cleared token")
	}
}
