package entity

import "telesalud-admin/internal/domain/schema"

// EquipmentType is read-only reference data (tipo_equipo).
type EquipmentType struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:nombre;type:varchar(100);not null" json:"nombre"`
}

func (EquipmentType) TableName() string {
	return schema.TableEquipmentType
}

// Equipment is a row of the equipos table.
type Equipment struct {
	ID              int64  `gorm:"column:id;primaryKey;autoIncrement" json:"id,omitempty"`
	Name            string `gorm:"column:nombre;type:varchar(255);not null" json:"nombre"`
	Brand           string `gorm:"column:marca;type:varchar(255);not null" json:"marca"`
	Model           string `gorm:"column:modelo;type:varchar(255);not null" json:"modelo"`
	SerialNumber    string `gorm:"column:numero_serie;type:varchar(255);not null" json:"numero_serie"`
	Available       bool   `gorm:"column:disponible;not null;default:true" json:"disponible"`
	EquipmentTypeID int64  `gorm:"column:tipo_equipo_id;not null;index" json:"tipo_equipo_id"`

	// Relationships
	EquipmentType *EquipmentType `gorm:"foreignKey:EquipmentTypeID" json:"tipo_equipo,omitempty"`
}

func (Equipment) TableName() string {
	return schema.TableEquipment
}

// EmptyEquipment is the sentinel of the equipment edit form.
func EmptyEquipment() Equipment {
	return Equipment{Available: true}
}
