package tokens

import "testing"

func TestSHA256Base64URL_Deterministic(t *testing.T) {
	if SHA256Base64URL("abc") != SHA256Base64URL("abc") {
		t.Fatal("digest must be deterministic")
	}
	if SHA256Base64URL("abc") == SHA256Base64URL("abd") {
		t.Fatal("distinct inputs should not collide")
	}
}
