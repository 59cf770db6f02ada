package tui

import (
	"context"
	"crypto/x509"
	"errors"
	"net"
	"net/url"
	"strings"
	"syscall"

	"github.com/studiowebux/apiconsole/internal/backend"
)

const (
	hintTimeout     = "Request timeout - the server took too long, try raising request_timeout in settings.yaml"
	hintCancelled   = "Request cancelled"
	hintRefused     = "Connection refused - check that the backend is running and the server URL is correct"
	hintReset       = "Connection reset by server - the backend may have crashed"
	hintUnreachable = "Network unreachable - check network connection and firewall settings"
	hintHost        = "Host unreachable - check that the backend is online"
	hintDNS         = "DNS resolution failed - verify the server hostname"
	hintSession     = "Session rejected - run 'apiconsole login' again"
)

// describeFailure returns a readable hint for err. Backend rejections
// already carry the server's message and only get a hint when the
// session was refused.
func describeFailure(err error) string {
	if err == nil {
		return ""
	}
	var be *backend.Error
	if errors.As(err, &be) {
		if be.Unauthorized() {
			return hintSession
		}
		return ""
	}
	return categorizeError(err)
}

// categorizeRequestError maps transport error text to an actionable message
func categorizeRequestError(errStr string) string {
	if errStr == "" {
		return ""
	}

	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "context canceled") ||
		strings.Contains(errLower, "context cancelled") {
		return hintCancelled
	}

	if strings.Contains(errLower, "deadline exceeded") {
		return hintTimeout
	}

	if strings.Contains(errLower, "no such host") ||
		strings.Contains(errLower, "dial tcp: lookup") {
		return hintDNS
	}

	if strings.Contains(errLower, "connection refused") {
		return hintRefused
	}

	if strings.Contains(errLower, "connection reset") {
		return hintReset
	}

	if strings.Contains(errLower, "network is unreachable") ||
		strings.Contains(errLower, "no route to host") {
		return hintUnreachable
	}

	if strings.Contains(errLower, "tls") ||
		strings.Contains(errLower, "certificate") ||
		strings.Contains(errLower, "x509") {
		return categorizeSSLError(errStr)
	}

	if strings.Contains(errLower, "unsupported protocol") {
		return "Invalid server URL - use http:// or https://"
	}

	if strings.Contains(errLower, "eof") {
		return "Connection closed unexpectedly - the backend terminated the connection"
	}

	if strings.Contains(errLower, "timeout") ||
		strings.Contains(errLower, "timed out") {
		return hintTimeout
	}

	return "Request failed: " + errStr
}

// categorizeSSLError gives guidance for certificate problems; fixes live in
// the tls section of settings.yaml
func categorizeSSLError(errStr string) string {
	errLower := strings.ToLower(errStr)

	switch {
	case strings.Contains(errLower, "unknown authority"):
		return "TLS certificate not trusted - set tls.ca_file or tls.insecure_skip_verify"
	case strings.Contains(errLower, "expired"):
		return "TLS certificate has expired - contact the server administrator"
	case strings.Contains(errLower, "certificate is valid for"):
		return "TLS hostname mismatch - certificate doesn't match the server hostname"
	case strings.Contains(errLower, "handshake"):
		return "TLS handshake failed - check TLS version compatibility"
	case strings.Contains(errLower, "bad certificate"),
		strings.Contains(errLower, "certificate required"):
		return "TLS client certificate rejected - check tls.cert_file and tls.key_file"
	}

	return "TLS error: " + errStr
}

// categorizeError unwraps err to its root cause before categorizing
func categorizeError(err error) string {
	if err == nil {
		return ""
	}

	rootErr := err
	for {
		unwrapped := errors.Unwrap(rootErr)
		if unwrapped == nil {
			break
		}
		rootErr = unwrapped
	}

	switch e := rootErr.(type) {
	case *url.Error:
		if e.Timeout() {
			return hintTimeout
		}
		return categorizeError(e.Err)
	case *net.OpError:
		return categorizeNetError(e)
	case syscall.Errno:
		return categorizeErrno(e, rootErr)
	case x509.UnknownAuthorityError:
		return "TLS certificate not trusted - set tls.ca_file or tls.insecure_skip_verify"
	case x509.CertificateInvalidError:
		return "TLS certificate is invalid: " + e.Error()
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return hintTimeout
	}
	if errors.Is(err, context.Canceled) {
		return hintCancelled
	}

	return categorizeRequestError(err.Error())
}

func categorizeNetError(e *net.OpError) string {
	if e.Timeout() {
		return hintTimeout
	}
	if errno, ok := e.Err.(syscall.Errno); ok {
		return categorizeErrno(errno, e)
	}
	return categorizeError(e.Err)
}

func categorizeErrno(errno syscall.Errno, orig error) string {
	switch errno {
	case syscall.ECONNREFUSED:
		return hintRefused
	case syscall.ECONNRESET:
		return hintReset
	case syscall.ENETUNREACH:
		return hintUnreachable
	case syscall.EHOSTUNREACH:
		return hintHost
	}
	return categorizeRequestError(orig.Error())
}
