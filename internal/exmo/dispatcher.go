package exmo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"exmo-trade-terminal/internal/config"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Credentials is the key pair of one trade profile. Authenticated commands
// are signed with the secret key and attributed via the public key.
type Credentials struct {
	PublicKey string
	SecretKey string
}

// Dispatcher resolves command names against the registry and executes them
// with the correct transport semantics: plain GET for public commands, signed
// form POST for authenticated ones. It is safe for concurrent use; nonce
// assignment is serialized per public key.
type Dispatcher struct {
	client  *resty.Client
	logger  *zap.Logger
	limiter *rate.Limiter

	mu        sync.Mutex
	lastNonce map[string]int64
	now       func() time.Time
}

// NewDispatcher creates a dispatcher against the configured exchange API.
// The request timeout is enforced by the underlying HTTP client; an expired
// call surfaces as a TransportError.
func NewDispatcher(cfg *config.Exchange, logger *zap.Logger) *Dispatcher {
	base := strings.TrimSuffix(cfg.BaseURL, "/") + "/" + strings.Trim(cfg.APIVersion, "/")

	client := resty.New().
		SetBaseURL(base).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second)

	return &Dispatcher{
		client:    client,
		logger:    logger.Named("dispatcher"),
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimitBurst),
		lastNonce: make(map[string]int64),
		now:       time.Now,
	}
}

// Invoke executes a named command and returns the raw JSON payload.
//
// Failures are typed: ErrUnknownCommand and ErrMissingCredentials are
// programming or configuration errors; *TransportError covers the network
// layer; *ResponseParseError a body that is not JSON; *ExchangeRejectedError
// a non-empty error field in the response. Invoke never retries: an
// authenticated call is nonce-bound and may have succeeded remotely even
// when the response was lost.
func (d *Dispatcher) Invoke(ctx context.Context, command string, params url.Values, creds *Credentials) (json.RawMessage, error) {
	spec, ok := commands[command]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, command)
	}
	if params == nil {
		params = url.Values{}
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	var resp *resty.Response
	var err error
	if spec.authenticated {
		if creds == nil || creds.PublicKey == "" || creds.SecretKey == "" {
			return nil, fmt.Errorf("%w: %q", ErrMissingCredentials, command)
		}
		params.Set("nonce", strconv.FormatInt(d.nextNonce(creds.PublicKey), 10))

		// The encoded payload is signed and then sent verbatim as the body,
		// so the signature always covers the exact wire bytes.
		payload := params.Encode()
		signature := Sign([]byte(creds.SecretKey), payload)

		d.logger.Debug("Executing authenticated command", zap.String("command", command))
		resp, err = d.client.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/x-www-form-urlencoded").
			SetHeader("Key", creds.PublicKey).
			SetHeader("Sign", signature).
			SetBody(payload).
			Post("/" + command)
	} else {
		d.logger.Debug("Executing public command", zap.String("command", command))
		resp, err = d.client.R().
			SetContext(ctx).
			SetQueryParamsFromValues(params).
			Get("/" + command)
	}

	if err != nil {
		d.logger.Warn("Command transport failure", zap.String("command", command), zap.Error(err))
		return nil, &TransportError{Command: command, Err: err}
	}

	return normalizeResponse(command, resp.Body())
}

// normalizeResponse validates the body as JSON and surfaces an exchange-side
// rejection carried in the error field. The exchange reports rejections in
// the body, so the HTTP status code is not consulted.
func normalizeResponse(command string, body []byte) (json.RawMessage, error) {
	if !json.Valid(body) {
		return nil, &ResponseParseError{Command: command, Err: fmt.Errorf("invalid JSON: %q", truncate(body, 128))}
	}

	// Some public commands return a top-level array; only objects can carry
	// an error field.
	trimmed := strings.TrimLeft(string(body), " \t\r\n")
	if strings.HasPrefix(trimmed, "{") {
		var probe struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &probe); err == nil && probe.Error != "" {
			return nil, &ExchangeRejectedError{Command: command, Message: probe.Error}
		}
	}

	return json.RawMessage(body), nil
}

// nextNonce returns a strictly increasing millisecond nonce for the given
// public key. Wall-clock time is the base; if the clock stalls or steps
// backwards, or two goroutines race within the same millisecond, the last
// issued value plus one wins so the exchange never sees a stale nonce.
func (d *Dispatcher) nextNonce(publicKey string) int64 {
	d.mu.Lock()
	defer d.mu.Unlock()

	nonce := d.now().UnixMilli()
	if last := d.lastNonce[publicKey]; nonce <= last {
		nonce = last + 1
	}
	d.lastNonce[publicKey] = nonce
	return nonce
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
