package dto

import (
	"strings"

	"telesalud-admin/internal/domain/entity"
)

// Request DTOs

// PatientRequest is the patient form, used for both create and edit.
type PatientRequest struct {
	DNI             string `json:"dni" validate:"required,min=8"`
	Nombre          string `json:"nombre" validate:"required,min=2"`
	Apellido        string `json:"apellido" validate:"required,min=2"`
	Sexo            string `json:"sexo" validate:"required,oneof=Masculino Femenino"`
	Direccion       string `json:"direccion" validate:"required,min=5"`
	FechaNacimiento string `json:"fecha_nacimiento" validate:"required,datetime=2006-01-02"`
	Telefono        string `json:"telefono" validate:"required,min=9"`
}

// Normalize trims the form so that length rules apply to the stored value.
func (r *PatientRequest) Normalize() {
	r.DNI = strings.TrimSpace(r.DNI)
	r.Nombre = strings.TrimSpace(r.Nombre)
	r.Apellido = strings.TrimSpace(r.Apellido)
	r.Sexo = strings.TrimSpace(r.Sexo)
	r.Direccion = strings.TrimSpace(r.Direccion)
	r.FechaNacimiento = strings.TrimSpace(r.FechaNacimiento)
	r.Telefono = strings.TrimSpace(r.Telefono)
}

// PatientFilterRequest is read from the query string; empty means absent.
type PatientFilterRequest struct {
	DNI             string `json:"dni"`
	Nombre          string `json:"nombre"`
	Apellido        string `json:"apellido"`
	Genero          string `json:"genero" validate:"omitempty,oneof=Masculino Femenino"`
	FechaNacimiento string `json:"fecha_nacimiento" validate:"omitempty,datetime=2006-01-02"`
	Telefono        string `json:"telefono"`
	Direccion       string `json:"direccion"`
}

type DNILookupRequest struct {
	DNI string `json:"dni" validate:"required,numeric,len=8"`
}

// Response DTOs

// PatientPrefill is what the DNI lookup fills into the creation form.
type PatientPrefill struct {
	DNI      string `json:"dni"`
	Nombre   string `json:"nombre"`
	Apellido string `json:"apellido"`
}

type DNILookupResponse struct {
	Persona *entity.PersonaDNI `json:"persona"`
	Prefill PatientPrefill     `json:"prefill"`
}
