package service

import (
	"context"
	"errors"

	"kambaz_api/internal/common"
	"kambaz_api/internal/common/ids"
	"kambaz_api/internal/domain/model"
	"kambaz_api/internal/domain/repository"
)

// documentCRUD is the id-addressed read/write shared by every entity
// service. entity names the kind in NotFound messages ("Course not found").
type documentCRUD struct {
	store      repository.DocumentStore
	ids        ids.Generator
	collection string
	entity     string
}

func newDocumentCRUD(store repository.DocumentStore, gen ids.Generator, collection, entity string) documentCRUD {
	return documentCRUD{store: store, ids: gen, collection: collection, entity: entity}
}

func (c documentCRUD) list(ctx context.Context, filter repository.Filter) ([]model.Document, error) {
	docs, err := c.store.Find(ctx, c.collection, filter)
	if err != nil {
		return nil, common.Errorf("failed to list %s: %w", c.collection, err)
	}
	return docs, nil
}

func (c documentCRUD) get(ctx context.Context, id string) (model.Document, error) {
	doc, err := c.store.FindByID(ctx, c.collection, id)
	if err != nil {
		return nil, c.translate(err, "get")
	}
	return doc, nil
}

// create stores doc as given, assigning an _id when the caller left it out.
func (c documentCRUD) create(ctx context.Context, doc model.Document) (model.Document, error) {
	if doc == nil {
		doc = model.Document{}
	}
	if err := c.ensureID(doc); err != nil {
		return nil, err
	}
	if err := c.store.Insert(ctx, c.collection, doc); err != nil {
		return nil, common.Errorf("failed to create %s: %w", c.entity, err)
	}
	return doc, nil
}

func (c documentCRUD) update(ctx context.Context, id string, patch model.Document) (model.Document, error) {
	if patch == nil {
		patch = model.Document{}
	}
	doc, err := c.store.UpdateByID(ctx, c.collection, id, patch)
	if err != nil {
		return nil, c.translate(err, "update")
	}
	return doc, nil
}

func (c documentCRUD) delete(ctx context.Context, id string) error {
	deleted, err := c.store.DeleteByID(ctx, c.collection, id)
	if err != nil {
		return common.Errorf("failed to delete %s %s: %w", c.entity, id, err)
	}
	if !deleted {
		return common.NotFound(c.entity)
	}
	return nil
}

func (c documentCRUD) ensureID(doc model.Document) error {
	raw, present := doc[model.FieldID]
	if !present || raw == nil || raw == "" {
		doc.SetID(c.ids.NewID())
		return nil
	}
	if _, ok := raw.(string); !ok {
		return common.BadRequest("_id must be a string")
	}
	return nil
}

func (c documentCRUD) translate(err error, op string) error {
	if errors.Is(err, common.ErrNotFound) {
		return common.NotFound(c.entity)
	}
	return common.Errorf("failed to %s %s: %w", op, c.entity, err)
}
