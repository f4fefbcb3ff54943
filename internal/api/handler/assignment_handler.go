package handler

import (
	"net/http"

	"kambaz_api/internal/app/service"
	"kambaz_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type AssignmentHandler struct {
	assignmentService *service.AssignmentService
}

func NewAssignmentHandler(as *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: as}
}

func (h *AssignmentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{assignmentId}", h.getAssignment)
	r.Put("/{assignmentId}", h.updateAssignment)
	r.Delete("/{assignmentId}", h.deleteAssignment)
}

func (h *AssignmentHandler) getAssignment(w http.ResponseWriter, r *http.Request) {
	assignment, err := h.assignmentService.GetAssignment(r.Context(), chi.URLParam(r, "assignmentId"))
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, assignment)
}

func (h *AssignmentHandler) updateAssignment(w http.ResponseWriter, r *http.Request) {
	patch, err := decodeDocument(r)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	assignment, err := h.assignmentService.UpdateAssignment(r.Context(), chi.URLParam(r, "assignmentId"), patch)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, assignment)
}

func (h *AssignmentHandler) deleteAssignment(w http.ResponseWriter, r *http.Request) {
	if err := h.assignmentService.DeleteAssignment(r.Context(), chi.URLParam(r, "assignmentId")); err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Assignment deleted successfully")
}
