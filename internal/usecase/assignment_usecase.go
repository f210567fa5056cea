package usecase

import (
	"context"

	"telesalud-admin/internal/converter"
	"telesalud-admin/internal/delivery/dto"
	"telesalud-admin/internal/domain/entity"
	"telesalud-admin/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type AssignmentUsecase interface {
	List(ctx context.Context, req *dto.AssignmentFilterRequest) ([]entity.EquipmentAssignment, error)
	Create(ctx context.Context, req *dto.AssignmentRequest) (*repository.Ack, error)
	Update(ctx context.Context, id int64, req *dto.AssignmentRequest) (*repository.Ack, error)
}

type assignmentUsecase struct {
	log            *logrus.Logger
	assignmentRepo repository.AssignmentRepository
	cache          listCache
}

func NewAssignmentUsecase(log *logrus.Logger, assignmentRepo repository.AssignmentRepository, cache repository.QueryCache) AssignmentUsecase {
	return &assignmentUsecase{
		log:            log,
		assignmentRepo: assignmentRepo,
		cache:          listCache{log: log, cache: cache},
	}
}

func (u *assignmentUsecase) List(ctx context.Context, req *dto.AssignmentFilterRequest) ([]entity.EquipmentAssignment, error) {
	filter, err := converter.AssignmentFilterFromRequest(req)
	if err != nil {
		return nil, ErrInvalidFilter
	}

	var assignments []entity.EquipmentAssignment
	read := u.cache.get(ctx, CacheKeyAssignments, filter, &assignments)
	if read.hit {
		return assignments, nil
	}

	assignments, err = u.assignmentRepo.List(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list assignments: %+v", err)
		return nil, err
	}
	if assignments == nil {
		assignments = []entity.EquipmentAssignment{}
	}

	u.cache.set(ctx, read, CacheKeyAssignments, filter, assignments)
	return assignments, nil
}

func (u *assignmentUsecase) Create(ctx context.Context, req *dto.AssignmentRequest) (*repository.Ack, error) {
	assignment, err := converter.AssignmentRequestToEntity(req)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	ack, err := u.assignmentRepo.Create(ctx, assignment)
	if err != nil {
		u.log.Warnf("Failed to create assignment: %+v", err)
		return nil, err
	}

	u.cache.invalidate(ctx, CacheKeyAssignments)
	return ack, nil
}

func (u *assignmentUsecase) Update(ctx context.Context, id int64, req *dto.AssignmentRequest) (*repository.Ack, error) {
	if id <= 0 {
		return nil, ErrMissingID
	}

	assignment, err := converter.AssignmentRequestToEntity(req)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	ack, err := u.assignmentRepo.Update(ctx, assignment, id)
	if err != nil {
		u.log.Warnf("Failed to update assignment %d: %+v", id, err)
		return nil, err
	}

	u.cache.invalidate(ctx, CacheKeyAssignments)
	return ack, nil
}
