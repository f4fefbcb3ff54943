package service

import (
	"context"
	"testing"
	"time"

	"kambaz_api/internal/common"
	"kambaz_api/internal/domain/model"
	"kambaz_api/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuizDefaults(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()

	quiz, err := s.quizzes.CreateQuiz(ctx, model.Document{"course": "c1"})
	require.NoError(t, err)

	stored, err := s.quizzes.GetQuiz(ctx, quiz.ID())
	require.NoError(t, err)
	assert.Equal(t, []interface{}{}, stored[model.FieldQuestions])
	assert.Equal(t, false, stored[model.FieldPublished])
	assert.Equal(t, "c1", stored[model.FieldCourse])
}

func TestQuizzesForCourse(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()
	for _, course := range []string{"c1", "c2", "c1"} {
		_, err := s.quizzes.CreateQuiz(ctx, model.Document{"course": course})
		require.NoError(t, err)
	}

	quizzes, err := s.quizzes.QuizzesForCourse(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, quizzes, 2)

	_, err = s.quizzes.QuizzesForCourse(ctx, "")
	assert.ErrorIs(t, err, common.ErrBadRequest)
	assert.EqualError(t, err, "Course ID is required")
}

func TestDeleteQuizCascades(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()

	quiz, err := s.quizzes.CreateQuiz(ctx, model.Document{"course": "c1"})
	require.NoError(t, err)
	other, err := s.quizzes.CreateQuiz(ctx, model.Document{"course": "c1"})
	require.NoError(t, err)

	q1, err := s.quizzes.CreateQuestion(ctx, quiz.ID(), model.Document{"text": "2+2?"})
	require.NoError(t, err)
	q2, err := s.quizzes.CreateQuestion(ctx, quiz.ID(), model.Document{"text": "3+3?"})
	require.NoError(t, err)
	keep, err := s.quizzes.CreateQuestion(ctx, other.ID(), model.Document{"text": "kept"})
	require.NoError(t, err)
	attempt, err := s.quizzes.SubmitAttempt(ctx, quiz.ID(), model.Document{"user": "u1"})
	require.NoError(t, err)

	require.NoError(t, s.quizzes.DeleteQuiz(ctx, quiz.ID()))

	_, err = s.quizzes.GetQuiz(ctx, quiz.ID())
	assert.ErrorIs(t, err, common.ErrNotFound)
	for _, id := range []string{q1.ID(), q2.ID()} {
		_, err = s.store.FindByID(ctx, model.CollectionQuestions, id)
		assert.ErrorIs(t, err, common.ErrNotFound)
	}
	_, err = s.store.FindByID(ctx, model.CollectionAttempts, attempt.ID())
	assert.ErrorIs(t, err, common.ErrNotFound)

	_, err = s.store.FindByID(ctx, model.CollectionQuestions, keep.ID())
	assert.NoError(t, err)

	err = s.quizzes.DeleteQuiz(ctx, quiz.ID())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeleteQuizCascadeFailureStillDeletesQuiz(t *testing.T) {
	ctx := context.Background()
	store := failingDeleteManyStore{DocumentStore: repository.NewMemoryDocumentStore(), collection: model.CollectionQuestions}
	s := newTestServicesWithStore(store)

	quiz, err := s.quizzes.CreateQuiz(ctx, model.Document{"course": "c1"})
	require.NoError(t, err)
	_, err = s.quizzes.CreateQuestion(ctx, quiz.ID(), model.Document{"text": "orphan"})
	require.NoError(t, err)
	_, err = s.quizzes.SubmitAttempt(ctx, quiz.ID(), model.Document{"user": "u1"})
	require.NoError(t, err)

	require.NoError(t, s.quizzes.DeleteQuiz(ctx, quiz.ID()))

	_, err = s.quizzes.GetQuiz(ctx, quiz.ID())
	assert.ErrorIs(t, err, common.ErrNotFound)
	attempts, err := s.quizzes.AttemptsForUser(ctx, quiz.ID(), "u1")
	require.NoError(t, err)
	assert.Empty(t, attempts)
}

func TestCreateQuestionForcesQuiz(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()

	q, err := s.quizzes.CreateQuestion(ctx, "Q1", model.Document{"quiz": "elsewhere", "points": 5.0})
	require.NoError(t, err)
	assert.Equal(t, "Q1", q[model.FieldQuiz])

	questions, err := s.quizzes.QuestionsForQuiz(ctx, "Q1")
	require.NoError(t, err)
	assert.Equal(t, []string{q.ID()}, docIDs(questions))

	updated, err := s.quizzes.UpdateQuestion(ctx, q.ID(), model.Document{"points": 10.0})
	require.NoError(t, err)
	assert.Equal(t, 10.0, updated["points"])
	assert.Equal(t, "Q1", updated[model.FieldQuiz])

	require.NoError(t, s.quizzes.DeleteQuestion(ctx, q.ID()))
	err = s.quizzes.DeleteQuestion(ctx, q.ID())
	assert.EqualError(t, err, "Question not found")
}

func TestSubmitAttemptStampsServerTime(t *testing.T) {
	ctx := context.Background()
	s := newTestServices()
	s.quizzes.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 6000000, time.UTC) }

	attempt, err := s.quizzes.SubmitAttempt(ctx, "Q1", model.Document{
		"user": "u1", "submittedAt": "1999-01-01T00:00:00.000Z", "answers": []interface{}{"a"},
	})
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02T03:04:05.006Z", attempt[model.FieldSubmittedAt])
	assert.Equal(t, "Q1", attempt[model.FieldQuiz])

	_, err = s.quizzes.SubmitAttempt(ctx, "Q1", model.Document{"user": "u2"})
	require.NoError(t, err)
	_, err = s.quizzes.SubmitAttempt(ctx, "Q1", model.Document{"user": "u1"})
	require.NoError(t, err)

	mine, err := s.quizzes.AttemptsForUser(ctx, "Q1", "u1")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
