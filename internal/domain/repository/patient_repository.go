package repository

import (
	"context"

	"telesalud-admin/internal/domain/entity"
)

type PatientRepository interface {
	List(ctx context.Context, filter entity.PatientFilter) ([]entity.Patient, error)
	Create(ctx context.Context, patient *entity.Patient) (*Ack, error)
	Update(ctx context.Context, patient *entity.Patient, id int64) (*Ack, error)
}
