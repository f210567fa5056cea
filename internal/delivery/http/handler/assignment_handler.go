package handler

import (
	"net/http"

	"telesalud-admin/internal/converter"
	"telesalud-admin/internal/delivery/dto"
	"telesalud-admin/internal/usecase"
	"telesalud-admin/pkg/response"
	"telesalud-admin/pkg/validator"
)

type AssignmentHandler struct {
	assignmentUsecase usecase.AssignmentUsecase
	validator         *validator.CustomValidator
}

func NewAssignmentHandler(assignmentUsecase usecase.AssignmentUsecase, validator *validator.CustomValidator) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentUsecase: assignmentUsecase,
		validator:         validator,
	}
}

func (h *AssignmentHandler) List(w http.ResponseWriter, r *http.Request) {
	req := converter.AssignmentFilterRequestFromQuery(r.URL.Query())
	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	assignments, err := h.assignmentUsecase.List(r.Context(), req)
	if err != nil {
		writeError(w, err, "Failed to list assignments")
		return
	}

	response.Success(w, http.StatusOK, "Assignments retrieved successfully", assignments)
}

func (h *AssignmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AssignmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	ack, err := h.assignmentUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create assignment")
		return
	}

	response.Success(w, http.StatusCreated, "Assignment created successfully", ack)
}

func (h *AssignmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "Invalid assignment ID", nil)
		return
	}

	var req dto.AssignmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	ack, err := h.assignmentUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update assignment")
		return
	}

	response.Success(w, http.StatusOK, "Assignment updated successfully", ack)
}
