package httpapi

import (
	"testing"
	"time"
)

func TestSetMaxBodyBytes_DefaultWhenNonPositive(t *testing.T) {
	SetMaxBodyBytes(-1)
	if maxBodyBytes != 1<<20 {
		t.Fatalf("expected default 1MiB, got %d", maxBodyBytes)
	}
	SetMaxBodyBytes(1234)
	if maxBodyBytes != 1234 {
		t.Fatalf("expected 1234, got %d", maxBodyBytes)
	}
	SetMaxBodyBytes(0)
}

func TestSetLoadTimeout_NormalizesNegativeToZero(t *testing.T) {
	SetLoadTimeout(-time.Second)
	if loadTimeout != 0 {
		t.Fatalf("expected 0, got %s", loadTimeout)
	}
	SetLoadTimeout(3 * time.Second)
	if loadTimeout != 3*time.Second {
		t.Fatalf("expected 3s, got %s", loadTimeout)
	}
	SetLoadTimeout(0)
}

func TestSetLoadRateLimit(t *testing.T) {
	SetLoadRateLimit(5, 0)
	if loadRateRPS != 5 || loadRateBurst != 1 {
		t.Fatalf("rps=%v burst=%d", loadRateRPS, loadRateBurst)
	}
	SetLoadRateLimit(-1, 10)
	if loadRateRPS != 0 || loadRateBurst != 0 {
		t.Fatalf("expected disabled, got rps=%v burst=%d", loadRateRPS, loadRateBurst)
	}
}

func TestSetCORSOptions_CopiesSlices(t *testing.T) {
	origins := []string{"http://a"}
	SetCORSOptions(true, origins, nil, nil)
	t.Cleanup(func() { SetCORSOptions(false, nil, nil, nil) })
	origins[0] = "http://b"
	if corsAllowedOrigins[0] != "http://a" {
		t.Fatalf("origins aliased caller slice: %v", corsAllowedOrigins)
	}
}
