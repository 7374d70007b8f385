// Package logger expone un logger Zap singleton con scoping por contexto.
//
// # Decisiones
//
//   - Singleton: una sola instancia global inicializada con Init().
//   - Scoping por contexto: cada request lleva su propio logger con request_id,
//     method y path, sin crear un core nuevo.
//   - Entornos: "dev" usa consola con colores, "prod" usa JSON.
//   - Niveles: debug, info, warn, error (LOG_LEVEL).
//
// # Uso
//
// En main.go:
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, ServiceName: "menahq-api"})
//	defer logger.Sync()
//
// En controllers/services:
//
//	log := logger.From(ctx).With(logger.Layer("service"), logger.Component("auth.login"))
//	log.Info("user created", logger.CID(cid))
package logger
