package repository

import (
	"context"

	"telesalud-admin/internal/domain/entity"
)

type AssignmentRepository interface {
	List(ctx context.Context, filter entity.AssignmentFilter) ([]entity.EquipmentAssignment, error)
	Create(ctx context.Context, assignment *entity.EquipmentAssignment) (*Ack, error)
	Update(ctx context.Context, assignment *entity.EquipmentAssignment, id int64) (*Ack, error)
}
