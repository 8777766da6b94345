package domain

import (
	"errors"
	"time"
)

// DefaultIdleTimeout is how long a session survives without activity.
// Every successful Touch pushes the window forward (rolling expiry).
const DefaultIdleTimeout = 30 * time.Minute

// Session is the server-side record behind an opaque cookie token. The
// client only ever sees the token; identity and activity stay here.
type Session struct {
	Identity     string
	LastActivity time.Time
}

var ErrSessionInvalid = errors.New("session invalid")
var ErrSessionExpired = errors.New("session expired")
