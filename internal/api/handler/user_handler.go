package handler

import (
	"net/http"

	"kambaz_api/internal/api/middleware"
	"kambaz_api/internal/app/service"
	"kambaz_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService       *service.UserService
	courseService     *service.CourseService
	enrollmentService *service.EnrollmentService
	authService       *service.AuthService
}

func NewUserHandler(us *service.UserService, cs *service.CourseService, es *service.EnrollmentService, as *service.AuthService) *UserHandler {
	return &UserHandler{userService: us, courseService: cs, enrollmentService: es, authService: as}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(current chi.Router) {
		current.Use(middleware.SessionAuthenticator(h.authService))
		current.Get("/current/courses", h.listCurrentUserCourses)
		current.Post("/current/courses", h.createCurrentUserCourse)
	})

	r.Get("/", h.listUsers)   // GET /api/users?role=FACULTY&name=ali
	r.Post("/", h.createUser) // POST /api/users
	r.Get("/{userId}/enrollments", h.listEnrollments)
	r.Post("/{userId}/courses/{courseId}", h.enroll)
	r.Delete("/{userId}/courses/{courseId}", h.unenroll)
	r.Get("/{userId}", h.getUser)
	r.Put("/{userId}", h.updateUser)
	r.Delete("/{userId}", h.deleteUser)
}

func (h *UserHandler) listCurrentUserCourses(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetSessionUserFromContext(r.Context())
	courses, err := h.courseService.CoursesForUser(r.Context(), user.ID)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	respondWithDocuments(w, courses)
}

func (h *UserHandler) createCurrentUserCourse(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetSessionUserFromContext(r.Context())
	course, err := decodeDocument(r)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	created, err := h.courseService.CreateCourseForUser(r.Context(), user.ID, course)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	filter := service.UserFilter{
		Role: r.URL.Query().Get("role"),
		Name: r.URL.Query().Get("name"),
	}
	users, err := h.userService.ListUsers(r.Context(), filter)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	respondWithDocuments(w, users)
}

func (h *UserHandler) createUser(w http.ResponseWriter, r *http.Request) {
	user, err := decodeDocument(r)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	created, err := h.userService.CreateUser(r.Context(), user)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *UserHandler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.userService.GetUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	patch, err := decodeDocument(r)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	user, err := h.userService.UpdateUser(r.Context(), chi.URLParam(r, "userId"), patch)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.DeleteUser(r.Context(), chi.URLParam(r, "userId")); err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "User deleted successfully")
}

func (h *UserHandler) listEnrollments(w http.ResponseWriter, r *http.Request) {
	enrollments, err := h.enrollmentService.EnrollmentsForUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	respondWithDocuments(w, enrollments)
}

func (h *UserHandler) enroll(w http.ResponseWriter, r *http.Request) {
	enrollment, created, err := h.enrollmentService.Enroll(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "courseId"))
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

func (h *UserHandler) unenroll(w http.ResponseWriter, r *http.Request) {
	if err := h.enrollmentService.Unenroll(r.Context(), chi.URLParam(r, "userId"), chi.URLParam(r, "courseId")); err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Unenrolled successfully")
}
