package entity

import "telesalud-admin/internal/domain/schema"

// EquipmentAssignment delivers one Equipment to one Patient at an address.
// Equipment is a snapshot embedded at query time, not a live reference.
type EquipmentAssignment struct {
	ID          int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	EquipmentID int64  `gorm:"column:equipo_id;not null;index" json:"equipo_id"`
	PatientID   int64  `gorm:"column:paciente_id;not null;index" json:"paciente_id"`
	AssignedAt  Date   `gorm:"column:fecha_asignacion;type:date;not null" json:"fecha_asignacion"`
	Address     string `gorm:"column:direccion;type:text;not null" json:"direccion"`

	// Relationships
	Equipment *Equipment `gorm:"foreignKey:EquipmentID" json:"equipos,omitempty"`
}

func (EquipmentAssignment) TableName() string {
	return schema.TableAssignment
}
