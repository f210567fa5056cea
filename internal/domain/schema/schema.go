// Package schema declares the remote table and column names in one place.
// Entities, filter builders and table clients refer to these constants only.
package schema

// Tables
const (
	TablePatient       = "paciente"
	TableEquipment     = "equipos"
	TableEquipmentType = "tipo_equipo"
	TableAssignment    = "asignacion_equipos"
	TableAdminUser     = "admin_users"
)

// ColumnID is the store-assigned identifier shared by every domain table.
const ColumnID = "id"

// paciente
const (
	PatientDNI       = "dni"
	PatientFirstName = "nombre"
	PatientLastName  = "apellido"
	PatientGender    = "genero"
	PatientBirthDate = "fecha_nacimiento"
	PatientPhone     = "telefono"
	PatientAddress   = "direccion"
)

// equipos
const (
	EquipmentName         = "nombre"
	EquipmentBrand        = "marca"
	EquipmentModel        = "modelo"
	EquipmentSerialNumber = "numero_serie"
	EquipmentAvailable    = "disponible"
	EquipmentTypeID       = "tipo_equipo_id"
)

// tipo_equipo
const (
	EquipmentTypeName = "nombre"
)

// asignacion_equipos
const (
	AssignmentEquipmentID = "equipo_id"
	AssignmentPatientID   = "paciente_id"
	AssignmentDate        = "fecha_asignacion"
	AssignmentAddress     = "direccion"
)

// Relation is an embedded to-one resource. Table is both the remote table
// and the key the embedded row comes back under; Field is the Go struct
// field that receives it; ForeignKey is the owning table's column.
type Relation struct {
	Table      string
	Field      string
	ForeignKey string
}

var (
	EquipmentTypeOfEquipment = Relation{Table: TableEquipmentType, Field: "EquipmentType", ForeignKey: EquipmentTypeID}
	EquipmentOfAssignment    = Relation{Table: TableEquipment, Field: "Equipment", ForeignKey: AssignmentEquipmentID}
)

// Columns lists every persisted column per domain table.
var Columns = map[string][]string{
	TablePatient: {
		ColumnID, PatientDNI, PatientFirstName, PatientLastName,
		PatientGender, PatientBirthDate, PatientPhone, PatientAddress,
	},
	TableEquipment: {
		ColumnID, EquipmentName, EquipmentBrand, EquipmentModel,
		EquipmentSerialNumber, EquipmentAvailable, EquipmentTypeID,
	},
	TableEquipmentType: {
		ColumnID, EquipmentTypeName,
	},
	TableAssignment: {
		ColumnID, AssignmentEquipmentID, AssignmentPatientID, AssignmentDate, AssignmentAddress,
	},
}
