package jwt

import (
	"strings"
	"testing"
	"time"
)

const testSecret = "unit-test-secret"

func TestGenerateAndParse(t *testing.T) {
	token, err := GenerateToken("alice@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	claims, err := Parse(token, testSecret)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if claims.Subject != "alice@example.com" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
}

func TestParseExpiredToken(t *testing.T) {
	token, err := GenerateToken("alice@example.com", testSecret, -time.Second)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if _, err := Parse(token, testSecret); err == nil {
		t.Fatal("expected expired token to fail validation")
	}
}

func TestParseZeroTTLToken(t *testing.T) {
	token, err := GenerateToken("alice@example.com", testSecret, 0)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := Parse(token, testSecret); err == nil {
		t.Fatal("expected zero-ttl token to be invalid immediately after issuance")
	}
}

func TestParseTamperedSignature(t *testing.T) {
	token, err := GenerateToken("alice@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := strings.Join([]string{parts[0], parts[1], string(sig)}, ".")
	if _, err := Parse(tampered, testSecret); err == nil {
		t.Fatal("expected tampered signature to fail validation")
	}
}

func TestParseWrongSecret(t *testing.T) {
	token, err := GenerateToken("alice@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken returned error: %v", err)
	}
	if _, err := Parse(token, "a-different-secret"); err == nil {
		t.Fatal("expected token signed with another secret to fail validation")
	}
}

func TestParseGarbage(t *testing.T) {
	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := Parse(token, testSecret); err == nil {
			t.Fatalf("expected malformed token %q to fail validation", token)
		}
	}
}
