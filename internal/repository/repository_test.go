package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"telesalud-admin/internal/domain/entity"
	domainRepo "telesalud-admin/internal/domain/repository"
	"telesalud-admin/internal/domain/schema"
	"telesalud-admin/internal/infrastructure/memory"
)

func strPtr(s string) *string { return &s }

func TestPatientRepositoryListFiltersByName(t *testing.T) {
	client := memory.NewTableClient()
	_ = client.Seed(schema.TablePatient,
		entity.Patient{DNI: "11111111", FirstName: "JUAN", LastName: "PEREZ"},
		entity.Patient{DNI: "22222222", FirstName: "MARIA", LastName: "LOPEZ"},
	)
	repo := NewPatientRepository(client)

	got, err := repo.List(context.Background(), entity.PatientFilter{FirstName: strPtr("JUA")})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].FirstName != "JUAN" {
		t.Errorf("expected only JUAN, got %+v", got)
	}
}

func TestPatientRepositoryCreateIgnoresCallerID(t *testing.T) {
	client := memory.NewTableClient()
	repo := NewPatientRepository(client)

	p := &entity.Patient{ID: 42, DNI: "12345678", BirthDate: entity.NewDate(1990, time.January, 1)}
	if _, err := repo.Create(context.Background(), p); err != nil {
		t.Fatal(err)
	}
	if p.ID != 42 {
		t.Error("caller record mutated")
	}

	got, _ := repo.List(context.Background(), entity.PatientFilter{DNI: strPtr("12345678")})
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("expected store-assigned id 1, got %+v", got)
	}
}

func TestRepositoryWrapsStoreErrors(t *testing.T) {
	client := memory.NewTableClient()
	storeErr := &domainRepo.StoreError{Status: 401, Message: "JWT expired", Code: "PGRST301"}
	client.FailWith[schema.TablePatient] = storeErr
	client.FailWith[schema.TableEquipment] = storeErr
	ctx := context.Background()

	_, err := NewPatientRepository(client).List(ctx, entity.PatientFilter{})
	var qErr *domainRepo.RemoteQueryError
	if !errors.As(err, &qErr) || qErr.Message != "JWT expired" || qErr.Table != schema.TablePatient {
		t.Errorf("expected RemoteQueryError, got %#v", err)
	}

	_, err = NewEquipmentRepository(client).Update(ctx, &entity.Equipment{}, 1)
	var wErr *domainRepo.RemoteWriteError
	if !errors.As(err, &wErr) || wErr.Op != "update" || wErr.Code != "PGRST301" {
		t.Errorf("expected RemoteWriteError, got %#v", err)
	}
}

func TestEquipmentRepositoryUpdateWritesZeroValues(t *testing.T) {
	client := memory.NewTableClient()
	_ = client.Seed(schema.TableEquipmentType, entity.EquipmentType{ID: 3, Name: "Monitoreo"})
	_ = client.Seed(schema.TableEquipment, entity.Equipment{ID: 7, Name: "Oximetro", Brand: "Omron", Available: true, EquipmentTypeID: 3})
	repo := NewEquipmentRepository(client)
	ctx := context.Background()

	list, _ := repo.List(ctx, entity.EquipmentFilter{})
	edited := list[0]
	edited.Available = false

	for i := 0; i < 2; i++ {
		ack, err := repo.Update(ctx, &edited, edited.ID)
		if err != nil || ack.Count != 1 {
			t.Fatalf("update %d: %+v %v", i, ack, err)
		}
	}

	typeID := int64(3)
	got, _ := repo.List(ctx, entity.EquipmentFilter{EquipmentTypeID: &typeID})
	if len(got) != 1 {
		t.Fatalf("expected one row, got %+v", got)
	}
	if got[0].Available || got[0].Brand != "Omron" || got[0].EquipmentType == nil {
		t.Errorf("unexpected row %+v", got[0])
	}
}

func TestEquipmentTypeRepositoryList(t *testing.T) {
	client := memory.NewTableClient()
	_ = client.Seed(schema.TableEquipmentType,
		entity.EquipmentType{ID: 1, Name: "Monitoreo"},
		entity.EquipmentType{ID: 2, Name: "Movilidad"},
	)

	got, err := NewEquipmentTypeRepository(client).List(context.Background())
	if err != nil || len(got) != 2 || got[1].Name != "Movilidad" {
		t.Errorf("got %+v, %v", got, err)
	}
}

func TestAssignmentRepositoryEmbedsEquipment(t *testing.T) {
	client := memory.NewTableClient()
	_ = client.Seed(schema.TableEquipment, entity.Equipment{ID: 4, Name: "Glucometro"})
	repo := NewAssignmentRepository(client)
	ctx := context.Background()

	a := &entity.EquipmentAssignment{
		EquipmentID: 4,
		PatientID:   9,
		AssignedAt:  entity.NewDate(2024, time.March, 1),
		Address:     "Av. Arequipa 123",
	}
	if _, err := repo.Create(ctx, a); err != nil {
		t.Fatal(err)
	}

	patientID := int64(9)
	got, err := repo.List(ctx, entity.AssignmentFilter{PatientID: &patientID, Address: strPtr("arequipa")})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Equipment == nil || got[0].Equipment.Name != "Glucometro" {
		t.Errorf("expected embedded equipment, got %+v", got)
	}
	if got[0].AssignedAt.String() != "2024-03-01" {
		t.Errorf("date = %q", got[0].AssignedAt.String())
	}
}
