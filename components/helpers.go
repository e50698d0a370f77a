package components

import (
	"context"

	"skillbridge/internal/auth"
	"skillbridge/internal/constants"
)

func GetCsrfToken(ctx context.Context) string {
	if csrfToken, ok := ctx.Value(constants.CsrfTokenContextKey).(string); ok {
		return csrfToken
	}
	return ""
}

// GetSession returns the signed-in user's record, if any.
func GetSession(ctx context.Context) (auth.Record, bool) {
	if record, ok := ctx.Value(constants.SessionRecordKey).(auth.Record); ok {
		return record, true
	}
	return auth.Record{}, false
}

func GetLoggedIn(ctx context.Context) bool {
	_, ok := GetSession(ctx)
	return ok
}
