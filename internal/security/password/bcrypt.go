package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Costs controla el factor de trabajo de bcrypt.
// Default se usa en el alta/login; Sensitive en cambio de password.
type Costs struct {
	Default   int
	Sensitive int
}

var DefaultCosts = Costs{Default: 10, Sensitive: 12}

// Normalize aplica pisos razonables: nunca menos que bcrypt.MinCost y
// nunca menos que 10 para Default salvo en tests que lo pidan explícito.
func (c Costs) Normalize() Costs {
	if c.Default < bcrypt.MinCost {
		c.Default = DefaultCosts.Default
	}
	if c.Sensitive < c.Default {
		c.Sensitive = c.Default
	}
	return c
}

// Hash genera un hash bcrypt del password en texto plano.
func Hash(plain string, cost int) (string, error) {
	if plain == "" {
		return "", errors.New("empty password")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara en tiempo constante (lo garantiza bcrypt).
// Password vacío nunca verifica.
func Verify(plain, hash string) bool {
	if plain == "" || hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
