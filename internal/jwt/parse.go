package jwt

import (
	"errors"
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

const leeway = 30 * time.Second

var (
	ErrInvalidToken = errors.New("invalid_jwt")
	ErrUnknownKID   = errors.New("unknown kid")
)

// Verifier valida tokens emitidos por este proceso (misma KeySet).
type Verifier struct {
	Iss  string
	Keys *KeySet
}

func NewVerifier(iss string, ks *KeySet) *Verifier {
	return &Verifier{Iss: iss, Keys: ks}
}

// Verify exige EdDSA, iss igual al configurado y exp presente, con 30s de tolerancia.
func (v *Verifier) Verify(token string) (*Claims, error) {
	keyfunc := func(t *jwtv5.Token) (any, error) {
		if kid, _ := t.Header["kid"].(string); kid != "" && kid != v.Keys.KID {
			return nil, ErrUnknownKID
		}
		return v.Keys.Pub, nil
	}

	claims := &Claims{}
	tok, err := jwtv5.ParseWithClaims(token, claims, keyfunc,
		jwtv5.WithValidMethods([]string{"EdDSA"}),
		jwtv5.WithIssuer(v.Iss),
		jwtv5.WithExpirationRequired(),
		jwtv5.WithLeeway(leeway),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
