package usecase

import (
	"context"

	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/errs"
	"github.com/SrRalo/park-pal-reserva-facil/internal/pkg/jwt"
	"github.com/SrRalo/park-pal-reserva-facil/internal/usecase/shared"
)

var ErrTokenRevoked = errs.New("token has been revoked")

// TokenValidator checks signature and expiry via the jwt service, then the
// denylist. A revoker failure fails closed.
type TokenValidator struct {
	tokens  *jwt.Service
	revoker shared.TokenRevoker
}

func NewTokenValidator(tokens *jwt.Service, revoker shared.TokenRevoker) *TokenValidator {
	return &TokenValidator{tokens: tokens, revoker: revoker}
}

func (v *TokenValidator) Validate(ctx context.Context, token string) (*jwt.Claims, error) {
	claims, err := v.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := v.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, errs.Wrap(err, "checking token denylist")
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}
