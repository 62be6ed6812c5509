package httpapi

import (
	"context"
	"fmt"

	"github.com/riskibarqy/forces-league/internal/usecase"
)

type contextKey string

const adminContextKey contextKey = "admin_authenticated"

func withAdmin(ctx context.Context) context.Context {
	return context.WithValue(ctx, adminContextKey, true)
}

func requireAdminContext(ctx context.Context) error {
	if ok, _ := ctx.Value(adminContextKey).(bool); !ok {
		return fmt.Errorf("%w: admin access is missing from request context", usecase.ErrUnauthorized)
	}
	return nil
}
