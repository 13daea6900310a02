package jwt

import (
	"errors"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken cubre firma inválida, expiración, alg inesperado e issuer
// mismatch. Un solo error hacia afuera: no le damos oráculos al caller.
var ErrInvalidToken = errors.New("invalid token")

// Identity es lo ÚNICO que viaja dentro del token firmado. Permisos y roles
// se resuelven server-side en cada request; meterlos acá reintroduce staleness.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

// Issuer firma y verifica tokens HS256 con un secreto simétrico.
type Issuer struct {
	secret []byte
	Iss    string
	TTL    time.Duration
}

// NewIssuer falla con secreto vacío: no existe un default utilizable.
func NewIssuer(secret, iss string, ttl time.Duration) (*Issuer, error) {
	if secret == "" {
		return nil, errors.New("jwt: signing secret is required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), Iss: iss, TTL: ttl}, nil
}

// Issue emite un token con claims de identidad y expiración TTL.
func (i *Issuer) Issue(id Identity) (string, time.Time, error) {
	now := time.Now().UTC()
	exp := now.Add(i.TTL)

	claims := jwtv5.MapClaims{
		"iss":   i.Iss,
		"sub":   id.UserID,
		"email": id.Email,
		"name":  id.Name,
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   exp.Unix(),
	}
	tk := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	tk.Header["typ"] = "JWT"

	signed, err := tk.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify valida firma, expiración e issuer y devuelve la identidad.
// Cualquier falla es ErrInvalidToken.
func (i *Issuer) Verify(raw string) (Identity, error) {
	tk, err := jwtv5.Parse(raw,
		func(t *jwtv5.Token) (any, error) { return i.secret, nil },
		jwtv5.WithValidMethods([]string{jwtv5.SigningMethodHS256.Alg()}),
		jwtv5.WithIssuer(i.Iss),
		jwtv5.WithExpirationRequired(),
	)
	if err != nil || !tk.Valid {
		return Identity{}, ErrInvalidToken
	}
	claims, ok := tk.Claims.(jwtv5.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Identity{}, ErrInvalidToken
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	return Identity{UserID: sub, Email: email, Name: name}, nil
}
