package repository

import (
	"context"

	"telesalud-admin/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository stores local admin credentials (postgres driver only).
type UserRepository interface {
	Create(ctx context.Context, user *entity.AdminUser) error
	FindByEmail(ctx context.Context, email string) (*entity.AdminUser, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.AdminUser, error)
}
