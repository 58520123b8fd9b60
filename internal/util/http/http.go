// Package http provides HTTP utilities for fetching remote resources.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"syscall"
	"time"

	"github.com/jmylchreest/m3theme/internal/security"
	"github.com/jmylchreest/m3theme/internal/version"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBytes caps the size of a fetched body (32 MiB).
	DefaultMaxBytes int64 = 32 << 20
)

// CrossOrigin mirrors the image crossOrigin attribute: it decides whether
// credentials are attached to the request.
type CrossOrigin string

const (
	// CrossOriginAnonymous never sends credentials.
	CrossOriginAnonymous CrossOrigin = "anonymous"

	// CrossOriginUseCredentials sends the configured credential headers.
	CrossOriginUseCredentials CrossOrigin = "use-credentials"
)

// ParseCrossOrigin validates a cross-origin policy name. Empty means anonymous.
func ParseCrossOrigin(s string) (CrossOrigin, error) {
	switch CrossOrigin(strings.ToLower(strings.TrimSpace(s))) {
	case "", CrossOriginAnonymous:
		return CrossOriginAnonymous, nil
	case CrossOriginUseCredentials:
		return CrossOriginUseCredentials, nil
	default:
		return "", fmt.Errorf("invalid cross-origin policy: %q (valid: anonymous, use-credentials)", s)
	}
}

// credentialHeaders are stripped from anonymous requests.
var credentialHeaders = []string{"Authorization", "Cookie", "Proxy-Authorization"}

// FetchOptions configures HTTP fetch behavior.
type FetchOptions struct {
	// Timeout specifies the HTTP request timeout.
	// If zero, DefaultTimeout is used.
	Timeout time.Duration

	// Headers specifies additional HTTP headers to send with the request.
	Headers map[string]string

	// CrossOrigin selects whether credential headers in Headers are sent.
	CrossOrigin CrossOrigin

	// MaxBytes limits the body size. If zero, DefaultMaxBytes is used.
	MaxBytes int64

	// DenyPrivate refuses connections to loopback, private and link-local
	// addresses. The check runs on the resolved address of every dial, so it
	// also covers redirects and hostnames that resolve to private IPs.
	DenyPrivate bool
}

// ErrPrivateAddress is returned when DenyPrivate blocks a connection.
var ErrPrivateAddress = errors.New("connection to private address refused")

// blockedAddr decides which dialled addresses DenyPrivate refuses.
var blockedAddr = func(ap netip.AddrPort) bool {
	return security.IsPrivateAddr(ap.Addr())
}

// guardedTransport returns a transport that refuses blocked addresses at
// dial time. Proxies are disabled so the check sees the real destination.
func guardedTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout: 30 * time.Second,
		Control: func(_, address string, _ syscall.RawConn) error {
			ap, err := netip.ParseAddrPort(address)
			if err != nil || blockedAddr(ap) {
				return fmt.Errorf("%w: %s", ErrPrivateAddress, address)
			}
			return nil
		},
	}
	tr := http.DefaultTransport.(*http.Transport).Clone()
	tr.Proxy = nil
	tr.DialContext = dialer.DialContext
	return tr
}

// Fetch retrieves content from a URL with context and timeout support.
// It sets the User-Agent header, never sends a Referer, and handles common HTTP errors.
func Fetch(ctx context.Context, url string, opts FetchOptions) ([]byte, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	maxBytes := opts.MaxBytes
	if maxBytes == 0 {
		maxBytes = DefaultMaxBytes
	}

	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return fmt.Errorf("stopped after %d redirects", len(via))
			}
			// net/http adds the previous URL as Referer on redirects.
			req.Header.Del("Referer")
			return nil
		},
	}
	if opts.DenyPrivate {
		client.Transport = guardedTransport()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", version.UserAgent())

	for key, value := range opts.Headers {
		if opts.CrossOrigin != CrossOriginUseCredentials && isCredentialHeader(key) {
			continue
		}
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("response body exceeds %d bytes", maxBytes)
	}

	return data, nil
}

func isCredentialHeader(key string) bool {
	for _, h := range credentialHeaders {
		if strings.EqualFold(h, key) {
			return true
		}
	}
	return false
}
