package repository

import (
	"context"

	"telesalud-admin/internal/domain/entity"
	"telesalud-admin/internal/domain/query"
	domainRepo "telesalud-admin/internal/domain/repository"
	"telesalud-admin/internal/domain/schema"
)

type patientRepository struct {
	client domainRepo.TableClient
}

func NewPatientRepository(client domainRepo.TableClient) domainRepo.PatientRepository {
	return &patientRepository{client: client}
}

func (r *patientRepository) List(ctx context.Context, filter entity.PatientFilter) ([]entity.Patient, error) {
	var patients []entity.Patient
	sel := query.ApplyPatientFilter(query.Patients(), filter)
	if err := r.client.Select(ctx, sel, &patients); err != nil {
		return nil, domainRepo.NewQueryError(schema.TablePatient, err)
	}
	return patients, nil
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) (*domainRepo.Ack, error) {
	record := *patient
	record.ID = 0
	ack, err := r.client.Insert(ctx, schema.TablePatient, &record)
	if err != nil {
		return nil, domainRepo.NewWriteError(schema.TablePatient, "insert", err)
	}
	return ack, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *entity.Patient, id int64) (*domainRepo.Ack, error) {
	record := *patient
	record.ID = 0
	ack, err := r.client.Update(ctx, schema.TablePatient, &record, query.Eq(schema.ColumnID, id))
	if err != nil {
		return nil, domainRepo.NewWriteError(schema.TablePatient, "update", err)
	}
	return ack, nil
}
