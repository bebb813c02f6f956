package logx

import (
	"context"
)

type SecurityData struct {
	Key   string
	Value string
}

// SecurityLogger records audit-relevant events (logins, logouts, denied
// authorization checks) separately from the diagnostic log stream.
type SecurityLogger interface {
	Log(ctx context.Context, signature, name string, args ...SecurityData)
}
