package utils

import (
	"context"
	"strings"

	"rating-system/pkg/contextkeys"
	apperrors "rating-system/pkg/errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ConfirmationCodeSentinel — значение после успешного обмена; код одноразовый.
const ConfirmationCodeSentinel = "null"

// GenerateConfirmationCode возвращает короткий одноразовый код для письма.
func GenerateConfirmationCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:12])
}

func HashConfirmationCode(code string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckConfirmationCode(storedHash, code string) bool {
	if storedHash == ConfirmationCodeSentinel {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(code)) == nil
}

// UserIDFromContext достаёт ID аутентифицированного пользователя из контекста.
func UserIDFromContext(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok || userID == 0 {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

// ActorIDFromContext — как UserIDFromContext, но 0 означает анонимный запрос.
func ActorIDFromContext(ctx context.Context) uint64 {
	userID, _ := ctx.Value(contextkeys.UserIDKey).(uint64)
	return userID
}
