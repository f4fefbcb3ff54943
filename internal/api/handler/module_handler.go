package handler

import (
	"net/http"

	"kambaz_api/internal/app/service"
	"kambaz_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type ModuleHandler struct {
	moduleService *service.ModuleService
}

func NewModuleHandler(ms *service.ModuleService) *ModuleHandler {
	return &ModuleHandler{moduleService: ms}
}

func (h *ModuleHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{moduleId}", h.getModule)
	r.Put("/{moduleId}", h.updateModule)
	r.Delete("/{moduleId}", h.deleteModule)
}

func (h *ModuleHandler) getModule(w http.ResponseWriter, r *http.Request) {
	module, err := h.moduleService.GetModule(r.Context(), chi.URLParam(r, "moduleId"))
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, module)
}

func (h *ModuleHandler) updateModule(w http.ResponseWriter, r *http.Request) {
	patch, err := decodeDocument(r)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	module, err := h.moduleService.UpdateModule(r.Context(), chi.URLParam(r, "moduleId"), patch)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, module)
}

func (h *ModuleHandler) deleteModule(w http.ResponseWriter, r *http.Request) {
	if err := h.moduleService.DeleteModule(r.Context(), chi.URLParam(r, "moduleId")); err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Module deleted successfully")
}
