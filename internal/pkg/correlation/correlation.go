// Package correlation carries the per-request correlation identifier through
// context so every log line and outbound call for one logical transaction can
// be tied together. The edge middleware generates the identifier when the
// client did not supply one; outbound adapters propagate it unchanged.
package correlation

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header used to carry the correlation identifier.
const Header = "X-Request-ID"

type contextKey struct{}

// NewID generates a fresh correlation identifier.
func NewID() string {
	return uuid.NewString()
}

// WithID returns a context carrying the given correlation identifier.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the correlation identifier carried by ctx, or an empty
// string when none is set.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(contextKey{}).(string)
	return id
}
