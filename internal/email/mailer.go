// Package email abstrae el envío de correo con fallback de proveedor.
// El core lo usa sólo para avisos de seguridad (password cambiado); ninguna
// falla de envío hace fallar el request que la originó.
package email

import (
	"context"
	"errors"
	"fmt"

	"github.com/dropDatabas3/peoplehub/internal/observability/logger"
)

type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

type Mailer interface {
	Send(ctx context.Context, m Message) error
}

// Fallback intenta cada proveedor en orden hasta que uno acepte el mensaje.
type Fallback struct {
	providers []Mailer
}

func NewFallback(providers ...Mailer) *Fallback {
	return &Fallback{providers: providers}
}

func (f *Fallback) Send(ctx context.Context, m Message) error {
	if len(f.providers) == 0 {
		return errors.New("email: no providers configured")
	}
	var last error
	for i, p := range f.providers {
		if err := p.Send(ctx, m); err != nil {
			logger.From(ctx).Warn("mail provider failed, trying next",
				logger.Component("email"), logger.Any("provider_index", i), logger.Err(err))
			last = err
			continue
		}
		return nil
	}
	return fmt.Errorf("email: all providers failed: %w", last)
}

// Noop descarta mensajes. Para dev sin SMTP configurado.
type Noop struct{}

func (Noop) Send(ctx context.Context, m Message) error {
	logger.From(ctx).Debug("mail discarded (no smtp configured)",
		logger.Component("email"), logger.Email(m.To))
	return nil
}

var (
	_ Mailer = (*Fallback)(nil)
	_ Mailer = Noop{}
)
