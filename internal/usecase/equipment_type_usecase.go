package usecase

import (
	"context"

	"telesalud-admin/internal/domain/entity"
	"telesalud-admin/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type EquipmentTypeUsecase interface {
	List(ctx context.Context) ([]entity.EquipmentType, error)
}

type equipmentTypeUsecase struct {
	log      *logrus.Logger
	typeRepo repository.EquipmentTypeRepository
	cache    listCache
}

func NewEquipmentTypeUsecase(log *logrus.Logger, typeRepo repository.EquipmentTypeRepository, cache repository.QueryCache) EquipmentTypeUsecase {
	return &equipmentTypeUsecase{
		log:      log,
		typeRepo: typeRepo,
		cache:    listCache{log: log, cache: cache},
	}
}

func (u *equipmentTypeUsecase) List(ctx context.Context) ([]entity.EquipmentType, error) {
	var types []entity.EquipmentType
	read := u.cache.get(ctx, CacheKeyEquipmentTypes, nil, &types)
	if read.hit {
		return types, nil
	}

	types, err := u.typeRepo.List(ctx)
	if err != nil {
		u.log.Warnf("Failed to list equipment types: %+v", err)
		return nil, err
	}
	if types == nil {
		types = []entity.EquipmentType{}
	}

	u.cache.set(ctx, read, CacheKeyEquipmentTypes, nil, types)
	return types, nil
}
