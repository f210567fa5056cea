package entity

// Filters are sparse: a nil field means "no constraint on this column".
// Used by the query layer to avoid coupling with delivery DTOs.

type PatientFilter struct {
	DNI       *string `json:"dni,omitempty"`
	FirstName *string `json:"nombre,omitempty"`
	LastName  *string `json:"apellido,omitempty"`
	Gender    *Gender `json:"genero,omitempty"`
	BirthDate *Date   `json:"fecha_nacimiento,omitempty"`
	Phone     *string `json:"telefono,omitempty"`
	Address   *string `json:"direccion,omitempty"`
}

type EquipmentFilter struct {
	Name            *string `json:"nombre,omitempty"`
	Brand           *string `json:"marca,omitempty"`
	Model           *string `json:"modelo,omitempty"`
	SerialNumber    *string `json:"numero_serie,omitempty"`
	Available       *bool   `json:"disponible,omitempty"`
	EquipmentTypeID *int64  `json:"tipo_equipo_id,omitempty"`
}

type AssignmentFilter struct {
	EquipmentID *int64  `json:"equipo_id,omitempty"`
	PatientID   *int64  `json:"paciente_id,omitempty"`
	AssignedAt  *Date   `json:"fecha_asignacion,omitempty"`
	Address     *string `json:"direccion,omitempty"`
}
