package handler

import (
	"encoding/json"
	"net/http"

	"telesalud-admin/internal/converter"
	"telesalud-admin/internal/delivery/dto"
	"telesalud-admin/internal/domain/entity"
	"telesalud-admin/internal/service"
	"telesalud-admin/internal/usecase"
	"telesalud-admin/pkg/response"
	"telesalud-admin/pkg/validator"

	"github.com/sirupsen/logrus"
)

type EquipmentHandler struct {
	log                  *logrus.Logger
	equipmentUsecase     usecase.EquipmentUsecase
	equipmentTypeUsecase usecase.EquipmentTypeUsecase
	editStore            *service.EditTargetStore[entity.Equipment]
	validator            *validator.CustomValidator
}

func NewEquipmentHandler(
	log *logrus.Logger,
	equipmentUsecase usecase.EquipmentUsecase,
	equipmentTypeUsecase usecase.EquipmentTypeUsecase,
	editStore *service.EditTargetStore[entity.Equipment],
	validator *validator.CustomValidator,
) *EquipmentHandler {
	return &EquipmentHandler{
		log:                  log,
		equipmentUsecase:     equipmentUsecase,
		equipmentTypeUsecase: equipmentTypeUsecase,
		editStore:            editStore,
		validator:            validator,
	}
}

func (h *EquipmentHandler) List(w http.ResponseWriter, r *http.Request) {
	req := converter.EquipmentFilterRequestFromQuery(r.URL.Query())
	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	equipment, err := h.equipmentUsecase.List(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to list equipment")
		return
	}

	response.Success(w, http.StatusOK, "Equipment retrieved successfully", equipment)
}

func (h *EquipmentHandler) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.equipmentTypeUsecase.List(r.Context())
	if err != nil {
		writeError(w, err, "Failed to list equipment types")
		return
	}

	response.Success(w, http.StatusOK, "Equipment types retrieved successfully", types)
}

func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEquipmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	ack, err := h.equipmentUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create equipment")
		return
	}

	response.Success(w, http.StatusCreated, "Equipment created successfully", ack)
}

func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid equipment ID", nil)
		return
	}

	var req dto.UpdateEquipmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	ack, err := h.equipmentUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update equipment")
		return
	}

	response.Success(w, http.StatusOK, "Equipment updated successfully", ack)
}

func (h *EquipmentHandler) GetEditTarget(w http.ResponseWriter, r *http.Request) {
	equipment, err := h.editStore.EditForm(r.Context(), sessionID(r))
	if err != nil {
		h.log.Warnf("Failed to read equipment edit target: %+v", err)
		response.InternalServerError(w, "Failed to read edit target")
		return
	}

	response.Success(w, http.StatusOK, "Edit target retrieved successfully", equipment)
}

func (h *EquipmentHandler) SetEditTarget(w http.ResponseWriter, r *http.Request) {
	var equipment entity.Equipment
	if err := json.NewDecoder(r.Body).Decode(&equipment); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if equipment.ID <= 0 {
		response.Error(w, http.StatusBadRequest, "Invalid equipment ID", nil)
		return
	}

	if err := h.editStore.SetEditForm(r.Context(), sessionID(r), equipment); err != nil {
		h.log.Warnf("Failed to store equipment edit target: %+v", err)
		response.InternalServerError(w, "Failed to store edit target")
		return
	}

	response.Success(w, http.StatusOK, "Edit target set successfully", equipment)
}

func (h *EquipmentHandler) ResetEditTarget(w http.ResponseWriter, r *http.Request) {
	if err := h.editStore.Reset(r.Context(), sessionID(r)); err != nil {
		h.log.Warnf("Failed to reset equipment edit target: %+v", err)
		response.InternalServerError(w, "Failed to reset edit target")
		return
	}

	response.Success(w, http.StatusOK, "Edit target reset successfully", entity.EmptyEquipment())
}

func (h *EquipmentHandler) SubmitEditTarget(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateEquipmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	sid := sessionID(r)
	target, err := h.editStore.EditForm(r.Context(), sid)
	if err != nil {
		h.log.Warnf("Failed to read equipment edit target: %+v", err)
		response.InternalServerError(w, "Failed to read edit target")
		return
	}
	if target.ID == 0 {
		response.Error(w, http.StatusConflict, "No equipment selected for editing", nil)
		return
	}

	ack, err := h.equipmentUsecase.Update(r.Context(), target.ID, &req)
	if err != nil {
		writeError(w, err, "Failed to update equipment")
		return
	}

	if err := h.editStore.Reset(r.Context(), sid); err != nil {
		h.log.Warnf("Failed to reset equipment edit target: %+v", err)
	}

	response.Success(w, http.StatusOK, "Equipment updated successfully", ack)
}
