package service

import (
	"context"
	"errors"
	"fmt"

	"kambaz_api/internal/common"
	"kambaz_api/internal/domain/model"
	"kambaz_api/internal/domain/repository"
)

type EnrollmentService struct {
	store repository.DocumentStore
}

func NewEnrollmentService(store repository.DocumentStore) *EnrollmentService {
	return &EnrollmentService{store: store}
}

func (s *EnrollmentService) EnrollmentsForUser(ctx context.Context, userID string) ([]model.Document, error) {
	return s.find(ctx, repository.Eq(model.FieldUser, userID))
}

func (s *EnrollmentService) EnrollmentsForCourse(ctx context.Context, courseID string) ([]model.Document, error) {
	return s.find(ctx, repository.Eq(model.FieldCourse, courseID))
}

// Enroll links userID to courseID. Enrolling an existing pair returns the
// stored enrollment with created == false. Neither side is checked for
// existence.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID string) (enrollment model.Document, created bool, err error) {
	if userID == "" || courseID == "" {
		return nil, false, common.BadRequest("User ID and course ID are required")
	}

	id := model.EnrollmentID(userID, courseID)
	existing, err := s.store.FindByID(ctx, model.CollectionEnrollments, id)
	if err == nil {
		if err := checkPair(existing, userID, courseID); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to look up enrollment %s: %w", id, err)
	}

	enrollment = model.NewEnrollment(userID, courseID)
	if err := s.store.Insert(ctx, model.CollectionEnrollments, enrollment); err != nil {
		if errors.Is(err, common.ErrConflict) {
			// Lost a race with a concurrent enroll of the same pair.
			existing, findErr := s.store.FindByID(ctx, model.CollectionEnrollments, id)
			if findErr == nil {
				if err := checkPair(existing, userID, courseID); err != nil {
					return nil, false, err
				}
				return existing, false, nil
			}
		}
		return nil, false, fmt.Errorf("failed to create enrollment %s: %w", id, err)
	}
	return enrollment, true, nil
}

// checkPair rejects an enrollment stored under the same key for a different
// pair, as "a-b"+"c" and "a"+"b-c" share the id "a-b-c".
func checkPair(enrollment model.Document, userID, courseID string) error {
	if enrollment.String(model.FieldUser) == userID && enrollment.String(model.FieldCourse) == courseID {
		return nil
	}
	return fmt.Errorf("enrollment id %s is held by user %s in course %s: %w",
		enrollment.ID(), enrollment.String(model.FieldUser), enrollment.String(model.FieldCourse), common.ErrConflict)
}

// Unenroll removes the (userID, courseID) enrollment.
func (s *EnrollmentService) Unenroll(ctx context.Context, userID, courseID string) error {
	filter := repository.Eq(model.FieldUser, userID).And(model.FieldCourse, courseID)
	n, err := s.store.DeleteMany(ctx, model.CollectionEnrollments, filter)
	if err != nil {
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}
	if n == 0 {
		return common.NotFound("Enrollment")
	}
	return nil
}

// CourseIDsForUser lists the course of every enrollment userID holds.
func (s *EnrollmentService) CourseIDsForUser(ctx context.Context, userID string) ([]string, error) {
	enrollments, err := s.EnrollmentsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	courseIDs := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		if id := e.String(model.FieldCourse); id != "" {
			courseIDs = append(courseIDs, id)
		}
	}
	return courseIDs, nil
}

func (s *EnrollmentService) find(ctx context.Context, filter repository.Filter) ([]model.Document, error) {
	docs, err := s.store.Find(ctx, model.CollectionEnrollments, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return docs, nil
}
