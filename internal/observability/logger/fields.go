package logger

import (
	"time"

	"go.uber.org/zap"
)

// Campos HTTP.

func RequestID(v string) zap.Field { return zap.String("request_id", v) }
func Method(v string) zap.Field    { return zap.String("method", v) }
func Path(v string) zap.Field      { return zap.String("path", v) }
func Status(v int) zap.Field       { return zap.Int("status", v) }
func Bytes(v int) zap.Field        { return zap.Int("bytes", v) }
func ClientIP(v string) zap.Field  { return zap.String("client_ip", v) }

func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }
func DurationMs(v int64) zap.Field       { return zap.Int64("duration_ms", v) }

// Campos de negocio.

func UserID(v string) zap.Field  { return zap.String("user_id", v) }
func OrgID(v string) zap.Field   { return zap.String("organization_id", v) }
func OrgName(v string) zap.Field { return zap.String("organization", v) }
func PermKey(v string) zap.Field { return zap.String("permission", v) }
func Email(v string) zap.Field   { return zap.String("email", v) }

// Campos de sistema.

func Component(v string) zap.Field { return zap.String("component", v) }
func Op(v string) zap.Field        { return zap.String("op", v) }
func Err(err error) zap.Field      { return zap.Error(err) }
func Count(v int) zap.Field        { return zap.Int("count", v) }
func Count64(v int64) zap.Field    { return zap.Int64("count", v) }
func Any(key string, v any) zap.Field { return zap.Any(key, v) }
