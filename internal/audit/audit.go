// Package audit arma y persiste las entradas del audit log de identidad.
// Cada entrada es un evento nuevo: id fresco, nunca se reescribe.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dropDatabas3/menahq/internal/domain/types"
	"github.com/dropDatabas3/menahq/internal/ids"
	"github.com/dropDatabas3/menahq/internal/observability/logger"
	"github.com/dropDatabas3/menahq/internal/store/core"
)

const (
	MsgUserCreated = "Created new user"
	MsgLoggedIn    = "Logged in on new session"
)

type Writer struct {
	now   func() time.Time
	newID func(time.Time) string
}

func NewWriter() *Writer {
	return &Writer{now: time.Now, newID: ids.NewAt}
}

// UserCreated registra el alta: actor system, after = snapshot del usuario.
func (w *Writer) UserCreated(ctx context.Context, repo core.AuditRepository, u types.User) error {
	after, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode user snapshot: %w", err)
	}
	return w.append(ctx, repo, types.ActorSystem, u.ItemRef(), nil, after, MsgUserCreated)
}

// LoggedIn registra un login exitoso. El actor es el propio usuario y no lleva snapshots.
func (w *Writer) LoggedIn(ctx context.Context, repo core.AuditRepository, cid string) error {
	return w.append(ctx, repo, cid, types.UserItem(cid), nil, nil, MsgLoggedIn)
}

func (w *Writer) append(ctx context.Context, repo core.AuditRepository, actor, item string, before, after json.RawMessage, msg string) error {
	// Postgres guarda microsegundos; truncamos para que lo leído sea igual a lo escrito.
	ts := w.now().UTC().Truncate(time.Microsecond)
	e := &types.AuditLogEntry{
		ID:        w.newID(ts),
		Timestamp: ts,
		Actor:     actor,
		Item:      item,
		Before:    before,
		After:     after,
		Message:   msg,
	}
	if err := repo.Append(ctx, e); err != nil {
		return err
	}
	logger.From(ctx).Info("audit",
		logger.Component("audit"),
		logger.String("audit_id", e.ID),
		logger.String("actor", actor),
		logger.String("item", item),
		logger.String("message", msg),
	)
	return nil
}
