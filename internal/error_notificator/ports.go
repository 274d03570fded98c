package error_notificator

import "context"

type Notificator interface {
	// Notify reports a pipeline failure to operators.
	Notify(ctx context.Context, err error, details string) error
}
