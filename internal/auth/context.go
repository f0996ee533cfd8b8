package auth

import "context"

type key byte

var identityKey = key(1)

func WithIdentity(ctx context.Context, ident *Identity) context.Context {
	return context.WithValue(ctx, identityKey, ident)
}

// IdentityFrom returns the identity stored by Middleware, or nil when
// the request did not pass through an authenticated group.
func IdentityFrom(ctx context.Context) *Identity {
	v := ctx.Value(identityKey)
	if v == nil {
		return nil
	}
	return v.(*Identity)
}
