package service

import (
	"context"

	"kambaz_api/internal/common/ids"
	"kambaz_api/internal/domain/model"
	"kambaz_api/internal/domain/repository"
)

type AssignmentService struct {
	courseChildService
}

func NewAssignmentService(store repository.DocumentStore, gen ids.Generator) *AssignmentService {
	return &AssignmentService{courseChildService{
		docs: newDocumentCRUD(store, gen, model.CollectionAssignments, "Assignment"),
	}}
}

func (s *AssignmentService) AssignmentsForCourse(ctx context.Context, courseID string) ([]model.Document, error) {
	return s.listForCourse(ctx, courseID)
}

func (s *AssignmentService) CreateAssignment(ctx context.Context, courseID string, assignment model.Document) (model.Document, error) {
	return s.createForCourse(ctx, courseID, assignment)
}

func (s *AssignmentService) GetAssignment(ctx context.Context, id string) (model.Document, error) {
	return s.docs.get(ctx, id)
}

func (s *AssignmentService) UpdateAssignment(ctx context.Context, id string, patch model.Document) (model.Document, error) {
	return s.docs.update(ctx, id, patch)
}

func (s *AssignmentService) DeleteAssignment(ctx context.Context, id string) error {
	return s.docs.delete(ctx, id)
}
