package handler

import (
	"net/http"

	"kambaz_api/internal/app/service"
	"kambaz_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type CourseHandler struct {
	courseService     *service.CourseService
	moduleService     *service.ModuleService
	assignmentService *service.AssignmentService
	enrollmentService *service.EnrollmentService
}

func NewCourseHandler(cs *service.CourseService, ms *service.ModuleService, as *service.AssignmentService, es *service.EnrollmentService) *CourseHandler {
	return &CourseHandler{courseService: cs, moduleService: ms, assignmentService: as, enrollmentService: es}
}

// enrollRequest is the body of POST /api/courses/{courseId}/enrollments.
type enrollRequest struct {
	User string `json:"user" validate:"required"`
}

func (h *CourseHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listCourses)
	r.Post("/", h.createCourse)

	r.Route("/{courseId}", func(r chi.Router) {
		r.Get("/", h.getCourse)
		r.Put("/", h.updateCourse)
		r.Delete("/", h.deleteCourse)

		r.Get("/modules", h.listModules)
		r.Post("/modules", h.createModule)
		r.Get("/assignments", h.listAssignments)
		r.Post("/assignments", h.createAssignment)
		r.Get("/enrollments", h.listEnrollments)
		r.Post("/enrollments", h.enroll)
	})
}

func (h *CourseHandler) listCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.courseService.ListCourses(r.Context())
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	respondWithDocuments(w, courses)
}

func (h *CourseHandler) createCourse(w http.ResponseWriter, r *http.Request) {
	course, err := decodeDocument(r)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	created, err := h.courseService.CreateCourse(r.Context(), course)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *CourseHandler) getCourse(w http.ResponseWriter, r *http.Request) {
	course, err := h.courseService.GetCourse(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) updateCourse(w http.ResponseWriter, r *http.Request) {
	patch, err := decodeDocument(r)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	course, err := h.courseService.UpdateCourse(r.Context(), chi.URLParam(r, "courseId"), patch)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, course)
}

func (h *CourseHandler) deleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := h.courseService.DeleteCourse(r.Context(), chi.URLParam(r, "courseId")); err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Course deleted successfully")
}

func (h *CourseHandler) listModules(w http.ResponseWriter, r *http.Request) {
	modules, err := h.moduleService.ModulesForCourse(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	respondWithDocuments(w, modules)
}

func (h *CourseHandler) createModule(w http.ResponseWriter, r *http.Request) {
	module, err := decodeDocument(r)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	created, err := h.moduleService.CreateModule(r.Context(), chi.URLParam(r, "courseId"), module)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *CourseHandler) listAssignments(w http.ResponseWriter, r *http.Request) {
	assignments, err := h.assignmentService.AssignmentsForCourse(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	respondWithDocuments(w, assignments)
}

func (h *CourseHandler) createAssignment(w http.ResponseWriter, r *http.Request) {
	assignment, err := decodeDocument(r)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	created, err := h.assignmentService.CreateAssignment(r.Context(), chi.URLParam(r, "courseId"), assignment)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *CourseHandler) listEnrollments(w http.ResponseWriter, r *http.Request) {
	enrollments, err := h.enrollmentService.EnrollmentsForCourse(r.Context(), chi.URLParam(r, "courseId"))
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	respondWithDocuments(w, enrollments)
}

func (h *CourseHandler) enroll(w http.ResponseWriter, r *http.Request) {
	var req enrollRequest
	if err := decodeAndValidate(r, &req); err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	enrollment, created, err := h.enrollmentService.Enroll(r.Context(), req.User, chi.URLParam(r, "courseId"))
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	common.RespondWithJSON(w, status, enrollment)
}
