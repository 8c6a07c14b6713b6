package peers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

// ErrRemoteUnavailable reports a transport failure, timeout or 5xx answer.
// It never leaves this package: capabilities turn it into a fallback.
var ErrRemoteUnavailable = errors.New("peers: remote unavailable")

var (
	errPeerNotFound = errors.New("peers: not found")
	errPeerRejected = errors.New("peers: rejected")
)

// Options configures the transport to one peer service.
type Options struct {
	// BaseURL is the peer API root, e.g. http://place:8080/api/v1.
	BaseURL string
	// Timeout bounds each call; a hung peer becomes a breaker failure.
	Timeout time.Duration
	// RatePerSecond throttles outbound calls; zero disables throttling.
	RatePerSecond float64
	Breaker       BreakerSettings
}

type transport struct {
	base    string
	client  *fasthttp.Client
	timeout time.Duration
	limiter *rate.Limiter
}

func newTransport(name string, opts Options) *transport {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RatePerSecond > 0 {
		burst := int(opts.RatePerSecond)
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst)
	}
	return &transport{
		base: strings.TrimRight(opts.BaseURL, "/"),
		client: &fasthttp.Client{
			Name:                "wayfarer-" + name,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
		},
		timeout: timeout,
		limiter: limiter,
	}
}

type callResult struct {
	status int
	err    error
}

// do sends a bodiless request with the caller's Authorization header and
// classifies the answer. It returns as soon as ctx is done even if the
// peer has not answered yet.
func (t *transport) do(ctx context.Context, method, path, token string) error {
	if err := t.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return fmt.Errorf("%w: rate limit: %v", ErrRemoteUnavailable, err)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	req.SetRequestURI(t.base + path)
	req.Header.SetMethod(method)
	req.Header.Set(fasthttp.HeaderAccept, "application/json")
	if token != "" {
		req.Header.Set(fasthttp.HeaderAuthorization, token)
	}

	timeout := t.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	// buffered so the goroutine never blocks after the caller has gone
	done := make(chan callResult, 1)
	go func() {
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)
		err := t.client.DoTimeout(req, resp, timeout)
		done <- callResult{status: resp.StatusCode(), err: err}
	}()

	var res callResult
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res = <-done:
	}

	if res.err != nil {
		return fmt.Errorf("%w: %s %s: %v", ErrRemoteUnavailable, method, path, res.err)
	}
	switch {
	case res.status >= 200 && res.status < 300:
		return nil
	case res.status == fasthttp.StatusNotFound:
		return errPeerNotFound
	case res.status >= 500:
		return fmt.Errorf("%w: %s %s: status %d", ErrRemoteUnavailable, method, path, res.status)
	default:
		return fmt.Errorf("%w: %s %s: status %d", errPeerRejected, method, path, res.status)
	}
}

func refPath(format, id string) string {
	return fmt.Sprintf(format, url.PathEscape(id))
}
