package exmo

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
)

var (
	// ErrUnknownCommand is returned when a command name is not in the registry.
	ErrUnknownCommand = errors.New("unknown exchange command")
	// ErrMissingCredentials is returned when an authenticated command is
	// invoked without a key pair.
	ErrMissingCredentials = errors.New("authenticated command requires credentials")
)

// TransportError reports a failed network round trip: connection refused,
// timeout, DNS failure, TLS handshake error. The call never reached a parsed
// exchange response. Callers may retry with backoff; the dispatcher does not.
type TransportError struct {
	Command string
	Err     error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error on %q (%s): %v", e.Command, e.Kind(), e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Kind classifies the underlying failure by name.
func (e *TransportError) Kind() string {
	var dnsErr *net.DNSError
	if errors.As(e.Err, &dnsErr) {
		return "dns"
	}
	var netErr net.Error
	if errors.As(e.Err, &netErr) && netErr.Timeout() {
		return "timeout"
	}
	if errors.Is(e.Err, os.ErrDeadlineExceeded) {
		return "timeout"
	}
	var urlErr *url.Error
	if errors.As(e.Err, &urlErr) && urlErr.Timeout() {
		return "timeout"
	}
	var opErr *net.OpError
	if errors.As(e.Err, &opErr) {
		return opErr.Op
	}
	return "network"
}

// ResponseParseError reports a response body that was not valid JSON. The
// call is aborted; nothing is hydrated from partial data.
type ResponseParseError struct {
	Command string
	Err     error
}

func (e *ResponseParseError) Error() string {
	return fmt.Sprintf("malformed response for %q: %v", e.Command, e.Err)
}

func (e *ResponseParseError) Unwrap() error { return e.Err }

// ExchangeRejectedError carries the exchange's own rejection message from the
// response's error field. The exchange's stated reason is authoritative; this
// layer never retries past it.
type ExchangeRejectedError struct {
	Command string
	Message string
}

func (e *ExchangeRejectedError) Error() string {
	return fmt.Sprintf("exchange rejected %q: %s", e.Command, e.Message)
}

// UnknownTickerError reports a ticker present locally but absent from the
// exchange's pair catalog, a configuration mismatch rather than a transient
// failure.
type UnknownTickerError struct {
	Ticker string
}

func (e *UnknownTickerError) Error() string {
	return fmt.Sprintf("ticker %q not present in exchange pair settings", e.Ticker)
}
