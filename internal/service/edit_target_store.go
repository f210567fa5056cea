package service

import (
	"context"

	"telesalud-admin/internal/domain/entity"
	"telesalud-admin/internal/domain/repository"
)

// EditTargetStore holds the record an edit form is working on. It never
// reads as absent: without a stored value it yields the sentinel.
type EditTargetStore[T any] struct {
	store repository.SessionStore
	key   string
	empty func() T
}

func NewEditTargetStore[T any](store repository.SessionStore, key string, empty func() T) *EditTargetStore[T] {
	return &EditTargetStore[T]{store: store, key: key, empty: empty}
}

func NewPatientEditStore(store repository.SessionStore) *EditTargetStore[entity.Patient] {
	return NewEditTargetStore(store, "edit:paciente", entity.EmptyPatient)
}

func NewEquipmentEditStore(store repository.SessionStore) *EditTargetStore[entity.Equipment] {
	return NewEditTargetStore(store, "edit:equipo", entity.EmptyEquipment)
}

func (s *EditTargetStore[T]) EditForm(ctx context.Context, sid string) (T, error) {
	value := s.empty()
	if sid == "" {
		return value, nil
	}
	found, err := s.store.Get(ctx, sid, s.key, &value)
	if err != nil {
		return s.empty(), err
	}
	if !found {
		return s.empty(), nil
	}
	return value, nil
}

// SetEditForm replaces the edit target wholesale.
func (s *EditTargetStore[T]) SetEditForm(ctx context.Context, sid string, value T) error {
	return s.store.Set(ctx, sid, s.key, value)
}

// Reset stores the sentinel.
func (s *EditTargetStore[T]) Reset(ctx context.Context, sid string) error {
	return s.store.Set(ctx, sid, s.key, s.empty())
}
