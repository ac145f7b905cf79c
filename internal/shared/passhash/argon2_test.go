package passhash

import "testing"

func TestHashAndVerify(t *testing.T) {
	h, err := HashPassword("password123")
	if err != nil {
		t.Fatal(err)
	}
	ok, err := VerifyPassword(h, "password123")
	if err != nil || !ok {
		t.Fatalf("verify failed: %v", err)
	}
	ok, err = VerifyPassword(h, "wrong")
	if err != nil || ok {
		t.Fatalf("expected mismatch")
	}
}

func TestHashesAreSalted(t *testing.T) {
	h1, err := HashPassword("secret")
	if err != nil {
		t.Fatal(err)
	}
	h2, err := HashPassword("secret")
	if err != nil {
		t.Fatal(err)
	}
	if h1 == h2 {
		t.Fatalf("same password produced identical hashes")
	}
}

func TestVerify_Errors(t *testing.T) {
	if _, err := VerifyPassword("", "x"); err == nil {
		t.Fatalf("want error on empty hash")
	}
	if _, err := VerifyPassword("$argon2id$bad", "x"); err == nil {
		t.Fatalf("want error on bad format")
	}
}
