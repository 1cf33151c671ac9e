// Package auditcontext carries request-scoped audit metadata through
// context.Context so services can attribute writes to an actor without
// depending on the HTTP layer.
package auditcontext

import (
	"context"
	"strings"
)

type contextKey string

const (
	requestIDKey contextKey = "audit_request_id"
	actorIDKey   contextKey = "audit_actor_id"
	actorNameKey contextKey = "audit_actor_name"
	ipAddressKey contextKey = "audit_ip_address"
	userAgentKey contextKey = "audit_user_agent"
)

// WithRequestID stores the correlation id for the current request.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext returns the correlation id, or "" when absent.
func RequestIDFromContext(ctx context.Context) string {
	return valueFrom(ctx, requestIDKey)
}

// WithActor stores the authenticated actor performing the request.
func WithActor(ctx context.Context, actorID, actorName string) context.Context {
	ctx = withValue(ctx, actorIDKey, actorID)
	return withValue(ctx, actorNameKey, actorName)
}

// ActorFromContext returns the actor id and display name, or empty strings.
func ActorFromContext(ctx context.Context) (string, string) {
	return valueFrom(ctx, actorIDKey), valueFrom(ctx, actorNameKey)
}

// WithIPAddress stores the client IP for the current request.
func WithIPAddress(ctx context.Context, ip string) context.Context {
	return withValue(ctx, ipAddressKey, ip)
}

// IPAddressFromContext returns the client IP, or "" when absent.
func IPAddressFromContext(ctx context.Context) string {
	return valueFrom(ctx, ipAddressKey)
}

// WithUserAgent stores the client user agent for the current request.
func WithUserAgent(ctx context.Context, userAgent string) context.Context {
	return withValue(ctx, userAgentKey, userAgent)
}

// UserAgentFromContext returns the client user agent, or "" when absent.
func UserAgentFromContext(ctx context.Context) string {
	return valueFrom(ctx, userAgentKey)
}

func withValue(ctx context.Context, key contextKey, value string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return ctx
	}
	return context.WithValue(ctx, key, value)
}

func valueFrom(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	if value, ok := ctx.Value(key).(string); ok {
		return strings.TrimSpace(value)
	}
	return ""
}
