package query

import (
	"strconv"

	"telesalud-admin/internal/domain/entity"
	"telesalud-admin/internal/domain/schema"
)

// PatientPredicates folds a patient filter into predicate descriptors.
// Text columns match case-insensitively, the rest by equality.
func PatientPredicates(f entity.PatientFilter) []Predicate {
	var preds []Predicate
	preds = appendEq(preds, schema.PatientDNI, f.DNI)
	preds = appendILike(preds, schema.PatientFirstName, f.FirstName)
	preds = appendILike(preds, schema.PatientLastName, f.LastName)
	if f.Gender != nil && *f.Gender != "" {
		preds = append(preds, Eq(schema.PatientGender, string(*f.Gender)))
	}
	preds = appendDate(preds, schema.PatientBirthDate, f.BirthDate)
	preds = appendEq(preds, schema.PatientPhone, f.Phone)
	preds = appendILike(preds, schema.PatientAddress, f.Address)
	return preds
}

// EquipmentPredicates folds an equipment filter into predicate descriptors.
func EquipmentPredicates(f entity.EquipmentFilter) []Predicate {
	var preds []Predicate
	preds = appendILike(preds, schema.EquipmentName, f.Name)
	preds = appendILike(preds, schema.EquipmentBrand, f.Brand)
	preds = appendILike(preds, schema.EquipmentModel, f.Model)
	preds = appendILike(preds, schema.EquipmentSerialNumber, f.SerialNumber)
	if f.Available != nil {
		// Compared as the string "true"/"false" against a boolean column.
		preds = append(preds, Eq(schema.EquipmentAvailable, strconv.FormatBool(*f.Available)))
	}
	preds = appendID(preds, schema.EquipmentTypeID, f.EquipmentTypeID)
	return preds
}

// AssignmentPredicates folds an assignment filter into predicate descriptors.
func AssignmentPredicates(f entity.AssignmentFilter) []Predicate {
	var preds []Predicate
	preds = appendID(preds, schema.AssignmentEquipmentID, f.EquipmentID)
	preds = appendID(preds, schema.AssignmentPatientID, f.PatientID)
	preds = appendDate(preds, schema.AssignmentDate, f.AssignedAt)
	preds = appendILike(preds, schema.AssignmentAddress, f.Address)
	return preds
}

// ApplyPatientFilter layers the patient filter onto base.
func ApplyPatientFilter(base Select, f entity.PatientFilter) Select {
	return base.Where(PatientPredicates(f)...)
}

// ApplyEquipmentFilter layers the equipment filter onto base.
func ApplyEquipmentFilter(base Select, f entity.EquipmentFilter) Select {
	return base.Where(EquipmentPredicates(f)...)
}

// ApplyAssignmentFilter layers the assignment filter onto base.
func ApplyAssignmentFilter(base Select, f entity.AssignmentFilter) Select {
	return base.Where(AssignmentPredicates(f)...)
}

// Patients is the base select of the patient list.
func Patients() Select {
	return From(schema.TablePatient)
}

// Equipment is the base select of the equipment list, embedding its type.
func Equipment() Select {
	return From(schema.TableEquipment, schema.EquipmentTypeOfEquipment)
}

// EquipmentTypes is the base select of the equipment type list.
func EquipmentTypes() Select {
	return From(schema.TableEquipmentType)
}

// Assignments is the base select of the assignment list, embedding the equipment.
func Assignments() Select {
	return From(schema.TableAssignment, schema.EquipmentOfAssignment)
}

// empty strings count as absent
func appendEq(preds []Predicate, column string, v *string) []Predicate {
	if v == nil || *v == "" {
		return preds
	}
	return append(preds, Eq(column, *v))
}

func appendILike(preds []Predicate, column string, v *string) []Predicate {
	if v == nil || *v == "" {
		return preds
	}
	return append(preds, ILike(column, *v))
}

func appendID(preds []Predicate, column string, v *int64) []Predicate {
	if v == nil {
		return preds
	}
	return append(preds, Eq(column, *v))
}

func appendDate(preds []Predicate, column string, v *entity.Date) []Predicate {
	if v == nil || v.IsZero() {
		return preds
	}
	return append(preds, Eq(column, v.String()))
}
