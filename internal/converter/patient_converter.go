package converter

import (
	"net/url"
	"strings"

	"telesalud-admin/internal/delivery/dto"
	"telesalud-admin/internal/domain/entity"
)

// PatientRequestToEntity maps the patient form to a row. Names are stored
// upper-cased.
func PatientRequestToEntity(req *dto.PatientRequest) (*entity.Patient, error) {
	birthDate, err := entity.ParseDate(req.FechaNacimiento)
	if err != nil {
		return nil, err
	}

	return &entity.Patient{
		DNI:       strings.TrimSpace(req.DNI),
		FirstName: strings.ToUpper(strings.TrimSpace(req.Nombre)),
		LastName:  strings.ToUpper(strings.TrimSpace(req.Apellido)),
		Gender:    entity.Gender(req.Sexo),
		BirthDate: birthDate,
		Phone:     strings.TrimSpace(req.Telefono),
		Address:   strings.TrimSpace(req.Direccion),
	}, nil
}

func PatientFilterRequestFromQuery(q url.Values) *dto.PatientFilterRequest {
	return &dto.PatientFilterRequest{
		DNI:             q.Get("dni"),
		Nombre:          q.Get("nombre"),
		Apellido:        q.Get("apellido"),
		Genero:          q.Get("genero"),
		FechaNacimiento: q.Get("fecha_nacimiento"),
		Telefono:        q.Get("telefono"),
		Direccion:       q.Get("direccion"),
	}
}

func PatientFilterFromRequest(req *dto.PatientFilterRequest) (entity.PatientFilter, error) {
	filter := entity.PatientFilter{
		DNI:       optional(req.DNI),
		FirstName: optional(req.Nombre),
		LastName:  optional(req.Apellido),
		Phone:     optional(req.Telefono),
		Address:   optional(req.Direccion),
	}
	if req.Genero != "" {
		gender := entity.Gender(req.Genero)
		filter.Gender = &gender
	}
	birthDate, err := optionalDate(req.FechaNacimiento)
	if err != nil {
		return entity.PatientFilter{}, err
	}
	filter.BirthDate = birthDate
	return filter, nil
}

// PersonaToPrefill picks the registry fields the creation form is filled with.
func PersonaToPrefill(persona *entity.PersonaDNI) dto.PatientPrefill {
	if persona == nil {
		return dto.PatientPrefill{}
	}
	return dto.PatientPrefill{
		DNI:      persona.NumeroDocumento,
		Nombre:   persona.Nombres,
		Apellido: persona.ApellidoPaterno,
	}
}
