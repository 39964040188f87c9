package services

import (
	"context"

	"rating-system/internal/authz"
	"rating-system/pkg/contextkeys"
)

// actorFromContext восстанавливает действующую сторону из контекста запроса.
// Для анонимного запроса возвращается нулевой Actor.
func actorFromContext(ctx context.Context) authz.Actor {
	id, _ := ctx.Value(contextkeys.UserIDKey).(uint64)
	role, _ := ctx.Value(contextkeys.UserRoleKey).(string)
	return authz.Actor{ID: id, Role: role}
}
