package dto

import "strings"

type AssignmentRequest struct {
	EquipoID        int64  `json:"equipo_id" validate:"required,gt=0"`
	PacienteID      int64  `json:"paciente_id" validate:"required,gt=0"`
	FechaAsignacion string `json:"fecha_asignacion" validate:"required,datetime=2006-01-02"`
	Direccion       string `json:"direccion" validate:"required,min=5"`
}

func (r *AssignmentRequest) Normalize() {
	r.FechaAsignacion = strings.TrimSpace(r.FechaAsignacion)
	r.Direccion = strings.TrimSpace(r.Direccion)
}

type AssignmentFilterRequest struct {
	EquipoID        string `json:"equipo_id" validate:"omitempty,numeric"`
	PacienteID      string `json:"paciente_id" validate:"omitempty,numeric"`
	FechaAsignacion string `json:"fecha_asignacion" validate:"omitempty,datetime=2006-01-02"`
	Direccion       string `json:"direccion"`
}
