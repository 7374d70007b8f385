package jwt

import (
	"fmt"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dropDatabas3/menahq/internal/domain/types"
)

const DefaultTTL = 24 * time.Hour

// Custom es el snapshot de usuario y rol al momento de emitir.
// Un cambio posterior del rol no altera tokens ya emitidos.
type Custom struct {
	User types.User `json:"user"`
	Role types.Role `json:"role"`
}

// Claims de la sesión: registradas + custom anidado.
type Claims struct {
	Custom Custom `json:"custom"`
	jwtv5.RegisteredClaims
}

// Issuer firma tokens de sesión con el KeySet del proceso.
type Issuer struct {
	Iss  string        // "iss"
	Keys *KeySet       // compartido con el Verifier
	TTL  time.Duration // exp = iat + TTL

	// now es reemplazable en tests.
	now func() time.Time
}

func NewIssuer(iss string, ks *KeySet, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{Iss: iss, Keys: ks, TTL: ttl, now: time.Now}
}

// Issue emite el token de sesión para user con role embebido.
func (i *Issuer) Issue(user types.User, role types.Role) (string, time.Time, error) {
	now := i.now().UTC()
	exp := now.Add(i.TTL)
	if role.Permissions == nil {
		role.Permissions = []string{}
	}

	claims := Claims{
		Custom: Custom{User: user, Role: role},
		RegisteredClaims: jwtv5.RegisteredClaims{
			Issuer:    i.Iss,
			Subject:   user.ID,
			IssuedAt:  jwtv5.NewNumericDate(now),
			NotBefore: jwtv5.NewNumericDate(now),
			ExpiresAt: jwtv5.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodEdDSA, claims)
	tk.Header["kid"] = i.Keys.KID
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.Keys.Priv)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return signed, exp, nil
}
