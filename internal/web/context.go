package web

import (
	"context"
	"net"
	"net/http"

	"github.com/JonMunkholm/catalogadmin/internal/core"
)

// WithRequestMetadata adds the client IP to ctx for request logging.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ip := r.RemoteAddr // Already processed by middleware.TrustedRealIP
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return core.ContextWithIPAddress(ctx, ip)
}
