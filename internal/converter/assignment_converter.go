package converter

import (
	"net/url"
	"strconv"
	"strings"

	"telesalud-admin/internal/delivery/dto"
	"telesalud-admin/internal/domain/entity"
)

func AssignmentRequestToEntity(req *dto.AssignmentRequest) (*entity.EquipmentAssignment, error) {
	assignedAt, err := entity.ParseDate(req.FechaAsignacion)
	if err != nil {
		return nil, err
	}

	return &entity.EquipmentAssignment{
		EquipmentID: req.EquipoID,
		PatientID:   req.PacienteID,
		AssignedAt:  assignedAt,
		Address:     strings.TrimSpace(req.Direccion),
	}, nil
}

func AssignmentFilterRequestFromQuery(q url.Values) *dto.AssignmentFilterRequest {
	return &dto.AssignmentFilterRequest{
		EquipoID:        q.Get("equipo_id"),
		PacienteID:      q.Get("paciente_id"),
		FechaAsignacion: q.Get("fecha_asignacion"),
		Direccion:       q.Get("direccion"),
	}
}

func AssignmentFilterFromRequest(req *dto.AssignmentFilterRequest) (entity.AssignmentFilter, error) {
	equipmentID, err := optionalID(req.EquipoID)
	if err != nil {
		return entity.AssignmentFilter{}, err
	}
	patientID, err := optionalID(req.PacienteID)
	if err != nil {
		return entity.AssignmentFilter{}, err
	}
	assignedAt, err := optionalDate(req.FechaAsignacion)
	if err != nil {
		return entity.AssignmentFilter{}, err
	}

	return entity.AssignmentFilter{
		EquipmentID: equipmentID,
		PatientID:   patientID,
		AssignedAt:  assignedAt,
		Address:     optional(req.Direccion),
	}, nil
}

// An empty form field means "no constraint", never "match empty".
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalID(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func optionalDate(s string) (*entity.Date, error) {
	if s == "" {
		return nil, nil
	}
	d, err := entity.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
