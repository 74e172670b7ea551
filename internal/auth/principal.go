// Package auth resolves the acting principal from bearer tokens and carries
// it through request contexts.
package auth

import "context"

// Principal is the authenticated caller: a user acting within an
// organization.
type Principal struct {
	UserID string
	OrgID  string
}

// Complete reports whether both identifiers are present.
func (p Principal) Complete() bool {
	return p.UserID != "" && p.OrgID != ""
}

type principalKey struct{}

// WithPrincipal returns a context carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the principal stored in ctx, if any.
func PrincipalFrom(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
