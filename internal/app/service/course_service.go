package service

import (
	"context"
	"log"

	"kambaz_api/internal/common"
	"kambaz_api/internal/common/ids"
	"kambaz_api/internal/domain/model"
	"kambaz_api/internal/domain/repository"
)

type CourseService struct {
	courses     documentCRUD
	enrollments *EnrollmentService
}

func NewCourseService(store repository.DocumentStore, enrollments *EnrollmentService, gen ids.Generator) *CourseService {
	return &CourseService{
		courses:     newDocumentCRUD(store, gen, model.CollectionCourses, "Course"),
		enrollments: enrollments,
	}
}

func (s *CourseService) ListCourses(ctx context.Context) ([]model.Document, error) {
	return s.courses.list(ctx, repository.Filter{})
}

func (s *CourseService) GetCourse(ctx context.Context, id string) (model.Document, error) {
	return s.courses.get(ctx, id)
}

func (s *CourseService) CreateCourse(ctx context.Context, course model.Document) (model.Document, error) {
	return s.courses.create(ctx, course)
}

func (s *CourseService) UpdateCourse(ctx context.Context, id string, patch model.Document) (model.Document, error) {
	return s.courses.update(ctx, id, patch)
}

// DeleteCourse removes only the course document. Modules, assignments,
// quizzes and enrollments that reference it stay.
func (s *CourseService) DeleteCourse(ctx context.Context, id string) error {
	return s.courses.delete(ctx, id)
}

// CoursesForUser returns the courses userID is enrolled in. Enrollments
// that point at deleted courses are skipped.
func (s *CourseService) CoursesForUser(ctx context.Context, userID string) ([]model.Document, error) {
	courseIDs, err := s.enrollments.CourseIDsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(courseIDs) == 0 {
		return []model.Document{}, nil
	}
	return s.courses.list(ctx, repository.Filter{In: map[string][]string{model.FieldID: courseIDs}})
}

// CreateCourseForUser creates a course under a fresh _id and enrolls its
// creator. A failed enrollment leaves the course in place.
func (s *CourseService) CreateCourseForUser(ctx context.Context, userID string, course model.Document) (model.Document, error) {
	if course == nil {
		course = model.Document{}
	}
	course.SetID(s.courses.ids.NewID())
	created, err := s.courses.create(ctx, course)
	if err != nil {
		return nil, err
	}
	if _, _, err := s.enrollments.Enroll(ctx, userID, created.ID()); err != nil {
		log.Printf("ERROR: Course %s created but enrolling creator %s failed: %v", created.ID(), userID, err)
		return nil, common.Errorf("failed to enroll creator in course %s: %w", created.ID(), err)
	}
	return created, nil
}
