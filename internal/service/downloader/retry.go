package downloader

import (
	"errors"
	"math"
	"math/rand"
	"net"
	"net/url"
	"time"

	"github.com/vertextoedge/bunkr-fetch/internal/domain"
)

// Action is what the retry loop should do after a failed attempt.
type Action int

const (
	// ActionRetry sleeps for the decision's delay and tries again,
	// unless attempts are exhausted.
	ActionRetry Action = iota

	// ActionAbort stops the item immediately.
	ActionAbort

	// ActionMarkOffline stops the item immediately and marks its
	// subdomain offline so later items skip the dead edge.
	ActionMarkOffline
)

// Decision is the explicit outcome of classifying one failed attempt.
// Producing it is pure; no I/O happens here.
type Decision struct {
	Action Action
	Delay  time.Duration
}

// ClassifyFailure maps a failed attempt to a retry decision. attempt is
// zero-based.
//
//	521          server down: mark the subdomain offline, stop
//	429/503      rate limited: steep backoff, retry
//	502          bad gateway: stop, retrying never helps
//	other status / network error: moderate backoff, retry
//	anything else: short fixed delay, retry
func ClassifyFailure(err error, attempt int) Decision {
	if code := domain.StatusCode(err); code != 0 {
		switch code {
		case 521:
			return Decision{Action: ActionMarkOffline}
		case 429, 503:
			return Decision{Action: ActionRetry, Delay: rateLimitBackoff(attempt)}
		case 502:
			return Decision{Action: ActionAbort}
		default:
			return Decision{Action: ActionRetry, Delay: networkBackoff(attempt)}
		}
	}

	if isNetworkError(err) {
		return Decision{Action: ActionRetry, Delay: networkBackoff(attempt)}
	}

	return Decision{Action: ActionRetry, Delay: 2 * time.Second}
}

// rateLimitBackoff is 3^(attempt+1) + uniform(1,3) seconds.
func rateLimitBackoff(attempt int) time.Duration {
	return seconds(math.Pow(3, float64(attempt+1)) + uniform(1, 3))
}

// networkBackoff is 2^attempt + uniform(1,2) seconds.
func networkBackoff(attempt int) time.Duration {
	return seconds(math.Pow(2, float64(attempt)) + uniform(1, 2))
}

func uniform(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func isNetworkError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var urlErr *url.Error
	return errors.As(err, &urlErr)
}
