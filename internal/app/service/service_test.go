package service

import (
	"context"
	"errors"

	"kambaz_api/internal/app/session"
	"kambaz_api/internal/common/ids"
	"kambaz_api/internal/common/security"
	"kambaz_api/internal/domain/model"
	"kambaz_api/internal/domain/repository"
)

type testServices struct {
	store       repository.DocumentStore
	sessions    *session.Registry
	auth        *AuthService
	users       *UserService
	courses     *CourseService
	modules     *ModuleService
	assignments *AssignmentService
	enrollments *EnrollmentService
	quizzes     *QuizService
}

func newTestServices() *testServices {
	return newTestServicesWithStore(repository.NewMemoryDocumentStore())
}

func newTestServicesWithStore(store repository.DocumentStore) *testServices {
	gen := ids.NewSequence("id")
	sessions := session.NewRegistry()
	hasher := security.PlainHasher{}
	enrollments := NewEnrollmentService(store)
	return &testServices{
		store:       store,
		sessions:    sessions,
		auth:        NewAuthService(store, sessions, hasher, gen),
		users:       NewUserService(store, hasher, gen),
		courses:     NewCourseService(store, enrollments, gen),
		modules:     NewModuleService(store, gen),
		assignments: NewAssignmentService(store, gen),
		enrollments: enrollments,
		quizzes:     NewQuizService(store, gen),
	}
}

// failingDeleteManyStore fails DeleteMany on one collection.
type failingDeleteManyStore struct {
	repository.DocumentStore
	collection string
}

func (s failingDeleteManyStore) DeleteMany(ctx context.Context, collection string, filter repository.Filter) (int64, error) {
	if collection == s.collection {
		return 0, errors.New("store unavailable")
	}
	return s.DocumentStore.DeleteMany(ctx, collection, filter)
}

func docIDs(docs []model.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.ID())
	}
	return out
}
