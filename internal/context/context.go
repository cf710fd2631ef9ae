package ctx

import (
	"context"

	"github.com/dsp4life2020-woodz/trippintv/internal/model"
)

type contextKey string

const (
	SessionContextKey contextKey = "session"
)

// Session is the authenticated caller of a single request.
type Session struct {
	User model.User
}

func WithSession(parent context.Context, session Session) context.Context {
	return context.WithValue(parent, SessionContextKey, session)
}

func GetSessionFromContext(c context.Context) (Session, bool) {
	session, ok := c.Value(SessionContextKey).(Session)
	return session, ok
}

func GetUserFromContext(c context.Context) (model.User, bool) {
	session, ok := GetSessionFromContext(c)
	if !ok {
		return model.User{}, false
	}
	return session.User, true
}
