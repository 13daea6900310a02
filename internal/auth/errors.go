package auth

import "errors"

// Errores centinela del servicio. El handler HTTP los mapea a status codes;
// los mensajes nunca distinguen "email no existe" de "password malo".
var (
	ErrInvalidInput       = errors.New("missing or malformed login fields")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrWeakPassword       = errors.New("password does not meet minimum length")
)
