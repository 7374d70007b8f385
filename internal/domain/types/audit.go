package types

import (
	"encoding/json"
	"time"
)

// ActorSystem identifica acciones hechas por el propio servicio.
const ActorSystem = "system"

// AuditLogEntry es un evento inmutable. Se escribe una vez y nunca se edita.
type AuditLogEntry struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Actor     string          `json:"actor"`
	Item      string          `json:"item"`
	Before    json.RawMessage `json:"before,omitempty"`
	After     json.RawMessage `json:"after,omitempty"`
	Message   string          `json:"message"`
}

// UserItem construye la referencia "user:<id>".
func UserItem(id string) string {
	return "user:" + id
}
