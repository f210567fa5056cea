package usecase

import (
	"context"
	"errors"

	"telesalud-admin/internal/converter"
	"telesalud-admin/internal/delivery/dto"
	"telesalud-admin/internal/domain/entity"
	"telesalud-admin/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidFilter     = errors.New("invalid filter value")
	ErrMissingID         = errors.New("record id is required")
)

type PatientUsecase interface {
	List(ctx context.Context, req *dto.PatientFilterRequest) ([]entity.Patient, error)
	Create(ctx context.Context, req *dto.PatientRequest) (*repository.Ack, error)
	Update(ctx context.Context, id int64, req *dto.PatientRequest) (*repository.Ack, error)
	// LookupDNI queries the national registry to pre-fill the creation form.
	LookupDNI(ctx context.Context, dni string) (*dto.DNILookupResponse, error)
}

type patientUsecase struct {
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	identity    repository.IdentityLookup
	cache       listCache
}

func NewPatientUsecase(
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	identity repository.IdentityLookup,
	cache repository.QueryCache,
) PatientUsecase {
	return &patientUsecase{
		log:         log,
		patientRepo: patientRepo,
		identity:    identity,
		cache:       listCache{log: log, cache: cache},
	}
}

func (u *patientUsecase) List(ctx context.Context, req *dto.PatientFilterRequest) ([]entity.Patient, error) {
	filter, err := converter.PatientFilterFromRequest(req)
	if err != nil {
		return nil, ErrInvalidFilter
	}

	var patients []entity.Patient
	read := u.cache.get(ctx, CacheKeyPatients, filter, &patients)
	if read.hit {
		return patients, nil
	}

	patients, err = u.patientRepo.List(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}
	if patients == nil {
		patients = []entity.Patient{}
	}

	u.cache.set(ctx, read, CacheKeyPatients, filter, patients)
	return patients, nil
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.PatientRequest) (*repository.Ack, error) {
	patient, err := converter.PatientRequestToEntity(req)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	ack, err := u.patientRepo.Create(ctx, patient)
	if err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.cache.invalidate(ctx, CacheKeyPatients)
	return ack, nil
}

func (u *patientUsecase) Update(ctx context.Context, id int64, req *dto.PatientRequest) (*repository.Ack, error) {
	if id <= 0 {
		return nil, ErrMissingID
	}

	patient, err := converter.PatientRequestToEntity(req)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	ack, err := u.patientRepo.Update(ctx, patient, id)
	if err != nil {
		u.log.Warnf("Failed to update patient %d: %+v", id, err)
		return nil, err
	}

	u.cache.invalidate(ctx, CacheKeyPatients)
	return ack, nil
}

func (u *patientUsecase) LookupDNI(ctx context.Context, dni string) (*dto.DNILookupResponse, error) {
	persona, err := u.identity.LookupDNI(ctx, dni)
	if err != nil {
		u.log.Warnf("Failed to look up DNI %s: %+v", dni, err)
		return nil, err
	}

	return &dto.DNILookupResponse{
		Persona: persona,
		Prefill: converter.PersonaToPrefill(persona),
	}, nil
}
