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

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

type PatientHandler struct {
	log            *logrus.Logger
	patientUsecase usecase.PatientUsecase
	editStore      *service.EditTargetStore[entity.Patient]
	validator      *validator.CustomValidator
}

func NewPatientHandler(
	log *logrus.Logger,
	patientUsecase usecase.PatientUsecase,
	editStore *service.EditTargetStore[entity.Patient],
	validator *validator.CustomValidator,
) *PatientHandler {
	return &PatientHandler{
		log:            log,
		patientUsecase: patientUsecase,
		editStore:      editStore,
		validator:      validator,
	}
}

// List handles GET /admin/pacientes with optional column filters in the query string.
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	req := converter.PatientFilterRequestFromQuery(r.URL.Query())
	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	patients, err := h.patientUsecase.List(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to list patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.PatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	ack, err := h.patientUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", ack)
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	var req dto.PatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	ack, err := h.patientUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", ack)
}

// LookupDNI handles GET /admin/pacientes/dni/{dni}.
func (h *PatientHandler) LookupDNI(w http.ResponseWriter, r *http.Request) {
	req := dto.DNILookupRequest{DNI: mux.Vars(r)["dni"]}
	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.patientUsecase.LookupDNI(r.Context(), req.DNI)
	if err != nil {
		writeError(w, err, "Failed to look up DNI")
		return
	}

	response.Success(w, http.StatusOK, "DNI found", result)
}

// GetEditTarget returns the patient being edited, or the sentinel.
func (h *PatientHandler) GetEditTarget(w http.ResponseWriter, r *http.Request) {
	patient, err := h.editStore.EditForm(r.Context(), sessionID(r))
	if err != nil {
		h.log.Warnf("Failed to read patient edit target: %+v", err)
		response.InternalServerError(w, "Failed to read edit target")
		return
	}

	response.Success(w, http.StatusOK, "Edit target retrieved successfully", patient)
}

// SetEditTarget stores the row whose edit action fired.
func (h *PatientHandler) SetEditTarget(w http.ResponseWriter, r *http.Request) {
	var patient entity.Patient
	if err := json.NewDecoder(r.Body).Decode(&patient); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}
	if patient.ID <= 0 {
		response.Error(w, http.StatusBadRequest, "Invalid patient ID", nil)
		return
	}

	if err := h.editStore.SetEditForm(r.Context(), sessionID(r), patient); err != nil {
		h.log.Warnf("Failed to store patient edit target: %+v", err)
		response.InternalServerError(w, "Failed to store edit target")
		return
	}

	response.Success(w, http.StatusOK, "Edit target set successfully", patient)
}

// ResetEditTarget runs when the edit modal closes.
func (h *PatientHandler) ResetEditTarget(w http.ResponseWriter, r *http.Request) {
	sid := sessionID(r)
	if err := h.editStore.Reset(r.Context(), sid); err != nil {
		h.log.Warnf("Failed to reset patient edit target: %+v", err)
		response.InternalServerError(w, "Failed to reset edit target")
		return
	}

	response.Success(w, http.StatusOK, "Edit target reset successfully", entity.EmptyPatient())
}

// SubmitEditTarget updates the patient being edited and closes the edit.
func (h *PatientHandler) SubmitEditTarget(w http.ResponseWriter, r *http.Request) {
	var req dto.PatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	sid := sessionID(r)
	target, err := h.editStore.EditForm(r.Context(), sid)
	if err != nil {
		h.log.Warnf("Failed to read patient edit target: %+v", err)
		response.InternalServerError(w, "Failed to read edit target")
		return
	}
	if target.ID == 0 {
		response.Error(w, http.StatusConflict, "No patient selected for editing", nil)
		return
	}

	ack, err := h.patientUsecase.Update(r.Context(), target.ID, &req)
	if err != nil {
		writeError(w, err, "Failed to update patient")
		return
	}

	if err := h.editStore.Reset(r.Context(), sid); err != nil {
		h.log.Warnf("Failed to reset patient edit target: %+v", err)
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", ack)
}
