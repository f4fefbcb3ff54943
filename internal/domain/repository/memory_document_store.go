package repository

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"kambaz_api/internal/common"
	"kambaz_api/internal/domain/model"
)

type memoryCollection struct {
	docs  map[string]model.Document
	order []string // insertion order
}

type memoryDocumentStore struct {
	mu          sync.RWMutex
	collections map[string]*memoryCollection
}

// NewMemoryDocumentStore returns a process-local store. Documents are deep
// copied on the way in and out, so callers never share state with it.
func NewMemoryDocumentStore() DocumentStore {
	return &memoryDocumentStore{collections: make(map[string]*memoryCollection)}
}

func (s *memoryDocumentStore) collection(name string) *memoryCollection {
	c, ok := s.collections[name]
	if !ok {
		c = &memoryCollection{docs: make(map[string]model.Document)}
		s.collections[name] = c
	}
	return c
}

func (s *memoryDocumentStore) Find(ctx context.Context, collection string, filter Filter) ([]model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []model.Document{}
	c, ok := s.collections[collection]
	if !ok {
		return out, nil
	}
	for _, id := range c.order {
		doc := c.docs[id]
		if matches(doc, filter) {
			out = append(out, doc.Clone())
		}
	}
	return out, nil
}

func (s *memoryDocumentStore) FindByID(ctx context.Context, collection, id string) (model.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collection]
	if !ok {
		return nil, common.ErrNotFound
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return doc.Clone(), nil
}

func (s *memoryDocumentStore) Insert(ctx context.Context, collection string, doc model.Document) error {
	id := doc.ID()
	if id == "" {
		return fmt.Errorf("memoryDocumentStore.Insert: document without _id: %w", common.ErrBadRequest)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.collection(collection)
	if _, exists := c.docs[id]; exists {
		return fmt.Errorf("document %s already exists in %s: %w", id, collection, common.ErrConflict)
	}
	c.docs[id] = doc.Clone()
	c.order = append(c.order, id)
	return nil
}

func (s *memoryDocumentStore) UpdateByID(ctx context.Context, collection, id string, patch model.Document) (model.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return nil, common.ErrNotFound
	}
	doc, ok := c.docs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	for k, v := range patch.Clone() {
		if k == model.FieldID {
			continue
		}
		doc[k] = v
	}
	return doc.Clone(), nil
}

func (s *memoryDocumentStore) DeleteByID(ctx context.Context, collection, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return false, nil
	}
	if _, ok := c.docs[id]; !ok {
		return false, nil
	}
	c.remove(id)
	return true, nil
}

func (s *memoryDocumentStore) DeleteMany(ctx context.Context, collection string, filter Filter) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return 0, nil
	}
	var doomed []string
	for _, id := range c.order {
		if matches(c.docs[id], filter) {
			doomed = append(doomed, id)
		}
	}
	for _, id := range doomed {
		c.remove(id)
	}
	return int64(len(doomed)), nil
}

func (c *memoryCollection) remove(id string) {
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

func matches(doc model.Document, f Filter) bool {
	for field, want := range f.Equals {
		got, ok := doc[field].(string)
		if !ok || got != want {
			return false
		}
	}
	for field, values := range f.In {
		got, ok := doc[field].(string)
		if !ok || !containsString(values, got) {
			return false
		}
	}
	if f.Match != nil && len(f.Match.Fields) > 0 {
		term := strings.ToLower(f.Match.Term)
		found := false
		for _, field := range f.Match.Fields {
			if v, ok := doc[field].(string); ok && strings.Contains(strings.ToLower(v), term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func containsString(values []string, s string) bool {
	for _, v := range values {
		if v == s {
			return true
		}
	}
	return false
}
