package entity

import "telesalud-admin/internal/domain/schema"

// Gender values stored in paciente.genero
type Gender string

const (
	GenderMale   Gender = "Masculino"
	GenderFemale Gender = "Femenino"
)

// Patient is a row of the paciente table. DNI is the natural external key,
// ID is assigned by the store on insert.
type Patient struct {
	ID        int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	DNI       string `gorm:"column:dni;type:varchar(20);not null;index" json:"dni"`
	FirstName string `gorm:"column:nombre;type:varchar(255);not null" json:"nombre"`
	LastName  string `gorm:"column:apellido;type:varchar(255);not null" json:"apellido"`
	Gender    Gender `gorm:"column:genero;type:varchar(20);not null" json:"genero"`
	BirthDate Date   `gorm:"column:fecha_nacimiento;type:date" json:"fecha_nacimiento"`
	Phone     string `gorm:"column:telefono;type:varchar(20)" json:"telefono"`
	Address   string `gorm:"column:direccion;type:text" json:"direccion"`
}

func (Patient) TableName() string {
	return schema.TablePatient
}

// EmptyPatient is the sentinel an edit form falls back to when no row is selected.
func EmptyPatient() Patient {
	return Patient{
		Gender:    GenderMale,
		BirthDate: Today(),
	}
}
