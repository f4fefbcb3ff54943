package service

import (
	"context"

	"kambaz_api/internal/common/ids"
	"kambaz_api/internal/domain/model"
	"kambaz_api/internal/domain/repository"
)

// courseChildService serves documents that point at a course through their
// "course" field. Modules and assignments share it.
type courseChildService struct {
	docs documentCRUD
}

func (s courseChildService) listForCourse(ctx context.Context, courseID string) ([]model.Document, error) {
	return s.docs.list(ctx, repository.Eq(model.FieldCourse, courseID))
}

// createForCourse overrides any course the caller put in doc.
func (s courseChildService) createForCourse(ctx context.Context, courseID string, doc model.Document) (model.Document, error) {
	if doc == nil {
		doc = model.Document{}
	}
	doc[model.FieldCourse] = courseID
	return s.docs.create(ctx, doc)
}

type ModuleService struct {
	courseChildService
}

func NewModuleService(store repository.DocumentStore, gen ids.Generator) *ModuleService {
	return &ModuleService{courseChildService{
		docs: newDocumentCRUD(store, gen, model.CollectionModules, "Module"),
	}}
}

func (s *ModuleService) ModulesForCourse(ctx context.Context, courseID string) ([]model.Document, error) {
	return s.listForCourse(ctx, courseID)
}

func (s *ModuleService) CreateModule(ctx context.Context, courseID string, module model.Document) (model.Document, error) {
	return s.createForCourse(ctx, courseID, module)
}

func (s *ModuleService) GetModule(ctx context.Context, id string) (model.Document, error) {
	return s.docs.get(ctx, id)
}

func (s *ModuleService) UpdateModule(ctx context.Context, id string, patch model.Document) (model.Document, error) {
	return s.docs.update(ctx, id, patch)
}

func (s *ModuleService) DeleteModule(ctx context.Context, id string) error {
	return s.docs.delete(ctx, id)
}
