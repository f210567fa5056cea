package repository

import (
	"context"

	"telesalud-admin/internal/domain/entity"
)

type EquipmentRepository interface {
	List(ctx context.Context, filter entity.EquipmentFilter) ([]entity.Equipment, error)
	Create(ctx context.Context, equipment *entity.Equipment) (*Ack, error)
	Update(ctx context.Context, equipment *entity.Equipment, id int64) (*Ack, error)
}

type EquipmentTypeRepository interface {
	List(ctx context.Context) ([]entity.EquipmentType, error)
}
