package auth

import "testing"

func TestSharedSecretVerify(t *testing.T) {
	v := SharedSecret{Secret: "s3cret"}

	identity, err := v.Verify("s3cret:user-1")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity.UserID != "user-1" {
		t.Fatalf("userID = %q, want user-1", identity.UserID)
	}
}

func TestSharedSecretVerifyRejections(t *testing.T) {
	v := SharedSecret{Secret: "s3cret"}

	cases := []struct {
		name  string
		token string
	}{
		{"wrong secret", "other:user-1"},
		{"missing user", "s3cret:"},
		{"no separator", "s3cret"},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := v.Verify(tc.token); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestSharedSecretUnconfigured(t *testing.T) {
	v := SharedSecret{}
	if _, err := v.Verify("anything:user-1"); err == nil {
		t.Fatal("expected error without a configured secret")
	}
}

func TestSharedSecretUserIDMayContainColons(t *testing.T) {
	v := SharedSecret{Secret: "s3cret"}
	identity, err := v.Verify("s3cret:tenant:user-1")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if identity.UserID != "tenant:user-1" {
		t.Fatalf("userID = %q", identity.UserID)
	}
}
