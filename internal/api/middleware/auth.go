package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/BBQ-ReservationService/internal/api/handlers"
	"github.com/m04kA/BBQ-ReservationService/internal/domain"
)

type actorCtxKey struct{}

const (
	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	msgMissingUserID = "인증이 필요합니다"
	msgInvalidUserID = "잘못된 사용자 식별자입니다"
)

// Auth извлекает инициатора запроса из заголовков X-User-ID и
// X-User-Role и кладет его в контекст. Роль по умолчанию - customer;
// оператором считается только явный X-User-Role: operator.
// Аутентификация как таковая выполняется на API gateway, сервис
// доверяет заголовкам
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := r.Header.Get(headerUserID)
		if rawID == "" {
			handlers.RespondUnauthorized(w, msgMissingUserID)
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserID)
			return
		}

		role := domain.RoleCustomer
		if r.Header.Get(headerUserRole) == string(domain.RoleOperator) {
			role = domain.RoleOperator
		}

		actor := domain.Actor{ID: userID, Role: role}
		ctx := context.WithValue(r.Context(), actorCtxKey{}, actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ActorFromContext возвращает инициатора запроса из контекста
func ActorFromContext(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorCtxKey{}).(domain.Actor)
	return actor, ok
}
