package ratelimit

import "testing"

func TestHashKey_Deterministic(t *testing.T) {
	t.Parallel()

	if HashKey("192.168.1.100", "s") != HashKey("192.168.1.100", "s") {
		t.Error("same key should produce same hash")
	}
}

func TestHashKey_Length(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ip   string
		salt string
	}{
		{"IPv4", "192.168.1.1", ""},
		{"IPv6 localhost", "::1", ""},
		{"IPv6 full", "2001:0db8:85a3:0000:0000:8a2e:0370:7334", "salt"},
		{"long salt", "10.0.0.1", string(make([]byte, 100))},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := len(HashKey(tt.ip, tt.salt)); got != 16 {
				t.Errorf("HashKey(%q) length = %d, want 16", tt.ip, got)
			}
		})
	}
}

func TestHashKey_SaltChangesDigest(t *testing.T) {
	t.Parallel()

	if HashKey("10.0.0.1", "a") == HashKey("10.0.0.1", "b") {
		t.Error("different salts should produce different hashes")
	}
	if HashKey("10.0.0.1", "") == HashKey("10.0.0.2", "") {
		t.Error("different keys should produce different hashes")
	}
}
