package ratelimit

import (
	"net/http"
	"strconv"
	"time"
)

// WriteHeaders emits the standard rate-limit response headers so
// clients can self-throttle. Called on admit and reject alike;
// Retry-After appears only on rejection.
func WriteHeaders(h http.Header, res Result) {
	h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
	h.Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

	if !res.Allowed {
		h.Set("Retry-After", strconv.Itoa(retryAfterSeconds(res.RetryAfter)))
	}
}

// Retry-After is whole seconds; round up so clients never retry early.
func retryAfterSeconds(d time.Duration) int {
	secs := int((d + time.Second - 1) / time.Second)
	if secs < 1 {
		secs = 1
	}
	return secs
}
