package repository

import (
	"context"

	"telesalud-admin/internal/domain/entity"
	"telesalud-admin/internal/domain/query"
	domainRepo "telesalud-admin/internal/domain/repository"
	"telesalud-admin/internal/domain/schema"
)

type assignmentRepository struct {
	client domainRepo.TableClient
}

func NewAssignmentRepository(client domainRepo.TableClient) domainRepo.AssignmentRepository {
	return &assignmentRepository{client: client}
}

func (r *assignmentRepository) List(ctx context.Context, filter entity.AssignmentFilter) ([]entity.EquipmentAssignment, error) {
	var assignments []entity.EquipmentAssignment
	sel := query.ApplyAssignmentFilter(query.Assignments(), filter)
	if err := r.client.Select(ctx, sel, &assignments); err != nil {
		return nil, domainRepo.NewQueryError(schema.TableAssignment, err)
	}
	return assignments, nil
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *entity.EquipmentAssignment) (*domainRepo.Ack, error) {
	record := *assignment
	record.ID = 0
	record.Equipment = nil
	ack, err := r.client.Insert(ctx, schema.TableAssignment, &record)
	if err != nil {
		return nil, domainRepo.NewWriteError(schema.TableAssignment, "insert", err)
	}
	return ack, nil
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *entity.EquipmentAssignment, id int64) (*domainRepo.Ack, error) {
	record := *assignment
	record.ID = 0
	record.Equipment = nil
	ack, err := r.client.Update(ctx, schema.TableAssignment, &record, query.Eq(schema.ColumnID, id))
	if err != nil {
		return nil, domainRepo.NewWriteError(schema.TableAssignment, "update", err)
	}
	return ack, nil
}
