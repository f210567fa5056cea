package converter

import (
	"net/url"
	"strconv"
	"strings"

	"telesalud-admin/internal/delivery/dto"
	"telesalud-admin/internal/domain/entity"
)

// CreateEquipmentRequestToEntity maps the creation form; disponible defaults to true.
func CreateEquipmentRequestToEntity(req *dto.CreateEquipmentRequest) *entity.Equipment {
	available := true
	if req.Disponible != nil {
		available = *req.Disponible
	}

	return &entity.Equipment{
		Name:            strings.TrimSpace(req.Nombre),
		Brand:           strings.TrimSpace(req.Marca),
		Model:           strings.TrimSpace(req.Modelo),
		SerialNumber:    strings.TrimSpace(req.NumeroSerie),
		Available:       available,
		EquipmentTypeID: req.TipoEquipoID,
	}
}

func UpdateEquipmentRequestToEntity(req *dto.UpdateEquipmentRequest) *entity.Equipment {
	return &entity.Equipment{
		Name:            strings.TrimSpace(req.Nombre),
		Brand:           strings.TrimSpace(req.Marca),
		Model:           strings.TrimSpace(req.Modelo),
		SerialNumber:    strings.TrimSpace(req.NumeroSerie),
		Available:       req.Disponible,
		EquipmentTypeID: req.TipoEquipoID,
	}
}

func EquipmentFilterRequestFromQuery(q url.Values) *dto.EquipmentFilterRequest {
	return &dto.EquipmentFilterRequest{
		Nombre:       q.Get("nombre"),
		Marca:        q.Get("marca"),
		Modelo:       q.Get("modelo"),
		NumeroSerie:  q.Get("numero_serie"),
		Disponible:   q.Get("disponible"),
		TipoEquipoID: q.Get("tipo_equipo_id"),
	}
}

func EquipmentFilterFromRequest(req *dto.EquipmentFilterRequest) (entity.EquipmentFilter, error) {
	filter := entity.EquipmentFilter{
		Name:         optional(req.Nombre),
		Brand:        optional(req.Marca),
		Model:        optional(req.Modelo),
		SerialNumber: optional(req.NumeroSerie),
	}
	if req.Disponible != "" {
		available, err := strconv.ParseBool(req.Disponible)
		if err != nil {
			return entity.EquipmentFilter{}, err
		}
		filter.Available = &available
	}
	typeID, err := optionalID(req.TipoEquipoID)
	if err != nil {
		return entity.EquipmentFilter{}, err
	}
	filter.EquipmentTypeID = typeID
	return filter, nil
}
