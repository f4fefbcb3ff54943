package service

import (
	"context"
	"log"
	"time"

	"kambaz_api/internal/common"
	"kambaz_api/internal/common/ids"
	"kambaz_api/internal/domain/model"
	"kambaz_api/internal/domain/repository"
)

// QuizService covers quizzes and the questions and attempts hanging off them.
type QuizService struct {
	store     repository.DocumentStore
	quizzes   documentCRUD
	questions documentCRUD
	attempts  documentCRUD
	now       func() time.Time
}

func NewQuizService(store repository.DocumentStore, gen ids.Generator) *QuizService {
	return &QuizService{
		store:     store,
		quizzes:   newDocumentCRUD(store, gen, model.CollectionQuizzes, "Quiz"),
		questions: newDocumentCRUD(store, gen, model.CollectionQuestions, "Question"),
		attempts:  newDocumentCRUD(store, gen, model.CollectionAttempts, "Attempt"),
		now:       time.Now,
	}
}

func (s *QuizService) QuizzesForCourse(ctx context.Context, courseID string) ([]model.Document, error) {
	if courseID == "" {
		return nil, common.BadRequest("Course ID is required")
	}
	return s.quizzes.list(ctx, repository.Eq(model.FieldCourse, courseID))
}

// CreateQuiz stores quiz with published=false and questions=[] unless the
// caller set them.
func (s *QuizService) CreateQuiz(ctx context.Context, quiz model.Document) (model.Document, error) {
	if quiz == nil {
		quiz = model.Document{}
	}
	model.ApplyQuizDefaults(quiz)
	return s.quizzes.create(ctx, quiz)
}

func (s *QuizService) GetQuiz(ctx context.Context, id string) (model.Document, error) {
	return s.quizzes.get(ctx, id)
}

func (s *QuizService) UpdateQuiz(ctx context.Context, id string, patch model.Document) (model.Document, error) {
	return s.quizzes.update(ctx, id, patch)
}

// DeleteQuiz removes the quiz, then its questions and attempts. The cleanup
// is not atomic with the quiz delete: if it fails, the quiz is still gone,
// the leftovers are logged as orphaned and nil is returned.
func (s *QuizService) DeleteQuiz(ctx context.Context, id string) error {
	if err := s.quizzes.delete(ctx, id); err != nil {
		return err
	}

	byQuiz := repository.Eq(model.FieldQuiz, id)
	if _, err := s.store.DeleteMany(ctx, model.CollectionQuestions, byQuiz); err != nil {
		log.Printf("ERROR: Quiz %s deleted but its questions were not; they are orphaned: %v", id, err)
	}
	if _, err := s.store.DeleteMany(ctx, model.CollectionAttempts, byQuiz); err != nil {
		log.Printf("ERROR: Quiz %s deleted but its attempts were not; they are orphaned: %v", id, err)
	}
	return nil
}

func (s *QuizService) QuestionsForQuiz(ctx context.Context, quizID string) ([]model.Document, error) {
	return s.questions.list(ctx, repository.Eq(model.FieldQuiz, quizID))
}

// CreateQuestion attaches question to quizID, overriding any quiz it names.
// The quiz is not checked for existence.
func (s *QuizService) CreateQuestion(ctx context.Context, quizID string, question model.Document) (model.Document, error) {
	if question == nil {
		question = model.Document{}
	}
	question[model.FieldQuiz] = quizID
	return s.questions.create(ctx, question)
}

func (s *QuizService) UpdateQuestion(ctx context.Context, id string, patch model.Document) (model.Document, error) {
	return s.questions.update(ctx, id, patch)
}

func (s *QuizService) DeleteQuestion(ctx context.Context, id string) error {
	return s.questions.delete(ctx, id)
}

// SubmitAttempt records attempt against quizID and stamps submittedAt with
// the server clock, replacing any client value.
func (s *QuizService) SubmitAttempt(ctx context.Context, quizID string, attempt model.Document) (model.Document, error) {
	if attempt == nil {
		attempt = model.Document{}
	}
	attempt[model.FieldQuiz] = quizID
	attempt[model.FieldSubmittedAt] = model.FormatSubmittedAt(s.now())
	return s.attempts.create(ctx, attempt)
}

func (s *QuizService) AttemptsForUser(ctx context.Context, quizID, userID string) ([]model.Document, error) {
	filter := repository.Eq(model.FieldQuiz, quizID).And(model.FieldUser, userID)
	return s.attempts.list(ctx, filter)
}
