// Package middlewares contiene los decoradores HTTP que el router monta con chi.
package middlewares

import "net/http"

// Middleware tiene la misma forma que espera chi.Router.Use.
type Middleware func(http.Handler) http.Handler
