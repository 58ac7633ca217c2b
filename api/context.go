package api

import (
	"context"

	"github.com/dasalon/blog-backend/errs"
	"github.com/dasalon/blog-backend/services"
)

type keyType string

const claimsKey keyType = "claims"

// ctxWithClaims stores the verified token claims on the request context.
func ctxWithClaims(ctx context.Context, claims *services.TokenClaims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ctxGetClaims retrieves the verified token claims from the context.
func ctxGetClaims(ctx context.Context) (*services.TokenClaims, error) {
	claims, ok := ctx.Value(claimsKey).(*services.TokenClaims)
	if !ok || claims == nil {
		return nil, errs.NewMissingTokenError()
	}
	return claims, nil
}
