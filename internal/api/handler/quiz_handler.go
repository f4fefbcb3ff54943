package handler

import (
	"net/http"

	"kambaz_api/internal/app/service"
	"kambaz_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type QuizHandler struct {
	quizService *service.QuizService
}

func NewQuizHandler(qs *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: qs}
}

func (h *QuizHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listQuizzes) // GET /api/quizzes?courseId=RS101
	r.Post("/", h.createQuiz)

	// Question routes addressed by question id. Registered before
	// /{quizId} so "questions" is not taken as a quiz id.
	r.Put("/questions/{questionId}", h.updateQuestion)
	r.Delete("/questions/{questionId}", h.deleteQuestion)

	r.Route("/{quizId}", func(r chi.Router) {
		r.Get("/", h.getQuiz)
		r.Put("/", h.updateQuiz)
		r.Delete("/", h.deleteQuiz)

		r.Get("/questions", h.listQuestions)
		r.Post("/questions", h.createQuestion)

		r.Post("/attempts", h.submitAttempt)
		r.Get("/attempts/{userId}", h.listAttempts)
	})
}

func (h *QuizHandler) listQuizzes(w http.ResponseWriter, r *http.Request) {
	quizzes, err := h.quizService.QuizzesForCourse(r.Context(), r.URL.Query().Get("courseId"))
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	respondWithDocuments(w, quizzes)
}

func (h *QuizHandler) createQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := decodeDocument(r)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	created, err := h.quizService.CreateQuiz(r.Context(), quiz)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *QuizHandler) getQuiz(w http.ResponseWriter, r *http.Request) {
	quiz, err := h.quizService.GetQuiz(r.Context(), chi.URLParam(r, "quizId"))
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, quiz)
}

func (h *QuizHandler) updateQuiz(w http.ResponseWriter, r *http.Request) {
	patch, err := decodeDocument(r)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	quiz, err := h.quizService.UpdateQuiz(r.Context(), chi.URLParam(r, "quizId"), patch)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, quiz)
}

func (h *QuizHandler) deleteQuiz(w http.ResponseWriter, r *http.Request) {
	if err := h.quizService.DeleteQuiz(r.Context(), chi.URLParam(r, "quizId")); err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Quiz deleted successfully")
}

func (h *QuizHandler) listQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.quizService.QuestionsForQuiz(r.Context(), chi.URLParam(r, "quizId"))
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	respondWithDocuments(w, questions)
}

func (h *QuizHandler) createQuestion(w http.ResponseWriter, r *http.Request) {
	question, err := decodeDocument(r)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	created, err := h.quizService.CreateQuestion(r.Context(), chi.URLParam(r, "quizId"), question)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *QuizHandler) updateQuestion(w http.ResponseWriter, r *http.Request) {
	patch, err := decodeDocument(r)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	question, err := h.quizService.UpdateQuestion(r.Context(), chi.URLParam(r, "questionId"), patch)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, question)
}

func (h *QuizHandler) deleteQuestion(w http.ResponseWriter, r *http.Request) {
	if err := h.quizService.DeleteQuestion(r.Context(), chi.URLParam(r, "questionId")); err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Question deleted successfully")
}

func (h *QuizHandler) submitAttempt(w http.ResponseWriter, r *http.Request) {
	attempt, err := decodeDocument(r)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	created, err := h.quizService.SubmitAttempt(r.Context(), chi.URLParam(r, "quizId"), attempt)
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, created)
}

func (h *QuizHandler) listAttempts(w http.ResponseWriter, r *http.Request) {
	attempts, err := h.quizService.AttemptsForUser(r.Context(), chi.URLParam(r, "quizId"), chi.URLParam(r, "userId"))
	if err != nil {
		common.RespondWithFailure(w, err)
		return
	}
	respondWithDocuments(w, attempts)
}
