package dto

import "strings"

// Request DTOs

type CreateEquipmentRequest struct {
	Nombre       string `json:"nombre" validate:"required,min=2"`
	Marca        string `json:"marca" validate:"required,min=2"`
	Modelo       string `json:"modelo" validate:"required,min=2"`
	NumeroSerie  string `json:"numero_serie" validate:"required,min=2"`
	Disponible   *bool  `json:"disponible"`
	TipoEquipoID int64  `json:"tipo_equipo_id" validate:"required,gt=0"`
}

func (r *CreateEquipmentRequest) Normalize() {
	r.Nombre = strings.TrimSpace(r.Nombre)
	r.Marca = strings.TrimSpace(r.Marca)
	r.Modelo = strings.TrimSpace(r.Modelo)
	r.NumeroSerie = strings.TrimSpace(r.NumeroSerie)
}

// UpdateEquipmentRequest is the edit form: every field is sent, disponible
// included even when false.
type UpdateEquipmentRequest struct {
	Nombre       string `json:"nombre" validate:"required,min=1"`
	Marca        string `json:"marca" validate:"required,min=1"`
	Modelo       string `json:"modelo" validate:"required,min=1"`
	NumeroSerie  string `json:"numero_serie" validate:"required,min=1"`
	Disponible   bool   `json:"disponible"`
	TipoEquipoID int64  `json:"tipo_equipo_id" validate:"required,gt=0"`
}

func (r *UpdateEquipmentRequest) Normalize() {
	r.Nombre = strings.TrimSpace(r.Nombre)
	r.Marca = strings.TrimSpace(r.Marca)
	r.Modelo = strings.TrimSpace(r.Modelo)
	r.NumeroSerie = strings.TrimSpace(r.NumeroSerie)
}

type EquipmentFilterRequest struct {
	Nombre       string `json:"nombre"`
	Marca        string `json:"marca"`
	Modelo       string `json:"modelo"`
	NumeroSerie  string `json:"numero_serie"`
	Disponible   string `json:"disponible" validate:"omitempty,oneof=true false"`
	TipoEquipoID string `json:"tipo_equipo_id" validate:"omitempty,numeric"`
}
