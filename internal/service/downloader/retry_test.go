package downloader

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/vertextoedge/bunkr-fetch/internal/domain"
)

func TestClassifyFailureServerDown(t *testing.T) {
	dec := ClassifyFailure(&domain.StatusError{Code: 521, URL: "u"}, 0)
	if dec.Action != ActionMarkOffline {
		t.Errorf("521 action = %v, want ActionMarkOffline", dec.Action)
	}
	if dec.Delay != 0 {
		t.Errorf("521 delay = %v, want 0", dec.Delay)
	}
}

func TestClassifyFailureBadGateway(t *testing.T) {
	dec := ClassifyFailure(&domain.StatusError{Code: 502, URL: "u"}, 3)
	if dec.Action != ActionAbort {
		t.Errorf("502 action = %v, want ActionAbort", dec.Action)
	}
}

func TestClassifyFailureRateLimited(t *testing.T) {
	for _, code := range []int{429, 503} {
		for attempt := 0; attempt < 3; attempt++ {
			dec := ClassifyFailure(&domain.StatusError{Code: code, URL: "u"}, attempt)
			if dec.Action != ActionRetry {
				t.Fatalf("%d action = %v, want ActionRetry", code, dec.Action)
			}
			base := time.Duration(pow(3, attempt+1)) * time.Second
			lo, hi := base+1*time.Second, base+3*time.Second
			if dec.Delay < lo || dec.Delay > hi {
				t.Errorf("%d attempt %d delay = %v, want in [%v, %v]", code, attempt, dec.Delay, lo, hi)
			}
		}
	}
}

func TestClassifyFailureOtherStatus(t *testing.T) {
	for attempt := 0; attempt < 3; attempt++ {
		dec := ClassifyFailure(&domain.StatusError{Code: 404, URL: "u"}, attempt)
		if dec.Action != ActionRetry {
			t.Fatalf("404 action = %v, want ActionRetry", dec.Action)
		}
		base := time.Duration(pow(2, attempt)) * time.Second
		lo, hi := base+1*time.Second, base+2*time.Second
		if dec.Delay < lo || dec.Delay > hi {
			t.Errorf("404 attempt %d delay = %v, want in [%v, %v]", attempt, dec.Delay, lo, hi)
		}
	}
}

func TestClassifyFailureNetworkError(t *testing.T) {
	err := &net.DNSError{Err: "no such host", Name: "cdn.example", IsNotFound: true}
	dec := ClassifyFailure(err, 1)
	if dec.Action != ActionRetry {
		t.Fatalf("dns error action = %v, want ActionRetry", dec.Action)
	}
	lo, hi := 3*time.Second, 4*time.Second
	if dec.Delay < lo || dec.Delay > hi {
		t.Errorf("dns error attempt 1 delay = %v, want in [%v, %v]", dec.Delay, lo, hi)
	}
}

func TestClassifyFailureUnknownError(t *testing.T) {
	dec := ClassifyFailure(errors.New("weird"), 4)
	if dec.Action != ActionRetry {
		t.Fatalf("unknown error action = %v, want ActionRetry", dec.Action)
	}
	if dec.Delay != 2*time.Second {
		t.Errorf("unknown error delay = %v, want 2s", dec.Delay)
	}
}

func pow(base, exp int) int {
	n := 1
	for i := 0; i < exp; i++ {
		n *= base
	}
	return n
}
