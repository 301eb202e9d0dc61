package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/farm_management_app/internal/apperrors"
	"github.com/SscSPs/farm_management_app/internal/core/domain"
	"github.com/SscSPs/farm_management_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	s.GetLogger(ctx).Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// AuthorizeUser checks that the actor belongs to an organisation and holds at least requiredRole.
func (s *BaseService) AuthorizeUser(ctx context.Context, actor domain.Principal, requiredRole domain.Role) error {
	if actor.UserID == "" || actor.OrganisationID == "" {
		return apperrors.ErrUnauthorized
	}
	if !actor.Can(requiredRole) {
		s.GetLogger(ctx).Warn("Role check failed",
			slog.String("user_id", actor.UserID),
			slog.String("role", string(actor.Role)),
			slog.String("required_role", string(requiredRole)))
		return fmt.Errorf("%w: role %s required", apperrors.ErrForbidden, requiredRole)
	}
	return nil
}
