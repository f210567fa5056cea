package repository

import (
	"context"

	"telesalud-admin/internal/domain/entity"
	"telesalud-admin/internal/domain/query"
	domainRepo "telesalud-admin/internal/domain/repository"
	"telesalud-admin/internal/domain/schema"
)

type equipmentRepository struct {
	client domainRepo.TableClient
}

func NewEquipmentRepository(client domainRepo.TableClient) domainRepo.EquipmentRepository {
	return &equipmentRepository{client: client}
}

func (r *equipmentRepository) List(ctx context.Context, filter entity.EquipmentFilter) ([]entity.Equipment, error) {
	var equipment []entity.Equipment
	sel := query.ApplyEquipmentFilter(query.Equipment(), filter)
	if err := r.client.Select(ctx, sel, &equipment); err != nil {
		return nil, domainRepo.NewQueryError(schema.TableEquipment, err)
	}
	return equipment, nil
}

func (r *equipmentRepository) Create(ctx context.Context, equipment *entity.Equipment) (*domainRepo.Ack, error) {
	ack, err := r.client.Insert(ctx, schema.TableEquipment, writable(equipment))
	if err != nil {
		return nil, domainRepo.NewWriteError(schema.TableEquipment, "insert", err)
	}
	return ack, nil
}

func (r *equipmentRepository) Update(ctx context.Context, equipment *entity.Equipment, id int64) (*domainRepo.Ack, error) {
	ack, err := r.client.Update(ctx, schema.TableEquipment, writable(equipment), query.Eq(schema.ColumnID, id))
	if err != nil {
		return nil, domainRepo.NewWriteError(schema.TableEquipment, "update", err)
	}
	return ack, nil
}

// writable strips the id and the embedded type so only own columns are sent.
func writable(equipment *entity.Equipment) *entity.Equipment {
	record := *equipment
	record.ID = 0
	record.EquipmentType = nil
	return &record
}

type equipmentTypeRepository struct {
	client domainRepo.TableClient
}

func NewEquipmentTypeRepository(client domainRepo.TableClient) domainRepo.EquipmentTypeRepository {
	return &equipmentTypeRepository{client: client}
}

func (r *equipmentTypeRepository) List(ctx context.Context) ([]entity.EquipmentType, error) {
	var types []entity.EquipmentType
	if err := r.client.Select(ctx, query.EquipmentTypes(), &types); err != nil {
		return nil, domainRepo.NewQueryError(schema.TableEquipmentType, err)
	}
	return types, nil
}
