package logger

import (
	"time"

	"go.uber.org/zap"
)

// Field es un alias para no importar zap en cada capa.
type Field = zap.Field

// ─── HTTP ───

func RequestID(v string) zap.Field       { return zap.String("request_id", v) }
func Method(v string) zap.Field          { return zap.String("method", v) }
func Path(v string) zap.Field            { return zap.String("path", v) }
func Status(v int) zap.Field             { return zap.Int("status", v) }
func DurationMs(v int64) zap.Field       { return zap.Int64("duration_ms", v) }
func Duration(v time.Duration) zap.Field { return zap.Duration("duration", v) }
func Bytes(v int) zap.Field              { return zap.Int("bytes", v) }
func ClientIP(v string) zap.Field        { return zap.String("client_ip", v) }
func UserAgent(v string) zap.Field       { return zap.String("user_agent", v) }

// ─── Negocio ───

// CID es el identificador estable del miembro en VATSIM.
func CID(v string) zap.Field { return zap.String("cid", v) }

// Role es el identificador de rol asignado.
func Role(v string) zap.Field { return zap.String("role", v) }

// Code es el código de error machine-readable de un flujo fallido.
func Code(v string) zap.Field { return zap.String("code", v) }

// Step es el paso del flujo de login en curso.
func Step(v string) zap.Field { return zap.String("step", v) }

// KID es el key id de la clave de firma.
func KID(v string) zap.Field { return zap.String("kid", v) }

// ─── Sistema ───

func Component(v string) zap.Field { return zap.String("component", v) }
func Op(v string) zap.Field        { return zap.String("op", v) }
func Layer(v string) zap.Field     { return zap.String("layer", v) }
func Err(err error) zap.Field      { return zap.Error(err) }

// ─── Genéricos ───

func Count(v int) zap.Field             { return zap.Int("count", v) }
func Any(key string, v any) zap.Field   { return zap.Any(key, v) }
func String(key, v string) zap.Field    { return zap.String(key, v) }
func Int(key string, v int) zap.Field   { return zap.Int(key, v) }
func Bool(key string, v bool) zap.Field { return zap.Bool(key, v) }
