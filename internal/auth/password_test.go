package auth

import "testing"

func TestHashPassword_RoundTrip(t *testing.T) {
	digest, err := HashPassword("p4ssw0rd")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if digest == "p4ssw0rd" {
		t.Fatalf("digest must not equal plaintext")
	}
	if !CheckPasswordHash("p4ssw0rd", digest) {
		t.Fatalf("original password should verify")
	}
	if CheckPasswordHash("p4ssw0rd ", digest) {
		t.Fatalf("different password should not verify")
	}
	if CheckPasswordHash("", digest) {
		t.Fatalf("empty password should not verify")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("same")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	b, err := HashPassword("same")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if a == b {
		t.Fatalf("two hashes of the same password should differ")
	}
	if !CheckPasswordHash("same", a) || !CheckPasswordHash("same", b) {
		t.Fatalf("both digests should verify")
	}
}

func TestCheckPasswordHash_MalformedDigest(t *testing.T) {
	// Fail closed: garbage digests are simply "no match".
	for _, digest := range []string{"", "not-a-bcrypt-digest", "$2a$zz$broken"} {
		if CheckPasswordHash("anything", digest) {
			t.Fatalf("malformed digest %q should not verify", digest)
		}
	}
}
