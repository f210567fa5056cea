package usecase

import (
	"context"

	"telesalud-admin/internal/converter"
	"telesalud-admin/internal/delivery/dto"
	"telesalud-admin/internal/domain/entity"
	"telesalud-admin/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type EquipmentUsecase interface {
	List(ctx context.Context, req *dto.EquipmentFilterRequest) ([]entity.Equipment, error)
	Create(ctx context.Context, req *dto.CreateEquipmentRequest) (*repository.Ack, error)
	Update(ctx context.Context, id int64, req *dto.UpdateEquipmentRequest) (*repository.Ack, error)
}

type equipmentUsecase struct {
	log           *logrus.Logger
	equipmentRepo repository.EquipmentRepository
	cache         listCache
}

func NewEquipmentUsecase(log *logrus.Logger, equipmentRepo repository.EquipmentRepository, cache repository.QueryCache) EquipmentUsecase {
	return &equipmentUsecase{
		log:           log,
		equipmentRepo: equipmentRepo,
		cache:         listCache{log: log, cache: cache},
	}
}

func (u *equipmentUsecase) List(ctx context.Context, req *dto.EquipmentFilterRequest) ([]entity.Equipment, error) {
	filter, err := converter.EquipmentFilterFromRequest(req)
	if err != nil {
		return nil, ErrInvalidFilter
	}

	var equipment []entity.Equipment
	read := u.cache.get(ctx, CacheKeyEquipment, filter, &equipment)
	if read.hit {
		return equipment, nil
	}

	equipment, err = u.equipmentRepo.List(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list equipment: %+v", err)
		return nil, err
	}
	if equipment == nil {
		equipment = []entity.Equipment{}
	}

	u.cache.set(ctx, read, CacheKeyEquipment, filter, equipment)
	return equipment, nil
}

// Create inserts the equipment and returns the store acknowledgment; the
// generated id is not read back.
func (u *equipmentUsecase) Create(ctx context.Context, req *dto.CreateEquipmentRequest) (*repository.Ack, error) {
	ack, err := u.equipmentRepo.Create(ctx, converter.CreateEquipmentRequestToEntity(req))
	if err != nil {
		u.log.Warnf("Failed to create equipment: %+v", err)
		return nil, err
	}

	u.cache.invalidate(ctx, CacheKeyEquipment)
	return ack, nil
}

func (u *equipmentUsecase) Update(ctx context.Context, id int64, req *dto.UpdateEquipmentRequest) (*repository.Ack, error) {
	if id <= 0 {
		return nil, ErrMissingID
	}

	ack, err := u.equipmentRepo.Update(ctx, converter.UpdateEquipmentRequestToEntity(req), id)
	if err != nil {
		u.log.Warnf("Failed to update equipment %d: %+v", id, err)
		return nil, err
	}

	u.cache.invalidate(ctx, CacheKeyEquipment)
	// Assignment lists embed an equipment snapshot.
	u.cache.invalidate(ctx, CacheKeyAssignments)
	return ack, nil
}
