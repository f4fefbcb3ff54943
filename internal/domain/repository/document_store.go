package repository

import (
	"context"
	"sort"

	"kambaz_api/internal/domain/model"
)

// DocumentStore is a collection-oriented store of schemaless documents keyed
// by their "_id" string.
//
// FindByID and UpdateByID return common.ErrNotFound when no document has the
// identifier. Insert returns common.ErrConflict when the identifier is taken.
type DocumentStore interface {
	Find(ctx context.Context, collection string, filter Filter) ([]model.Document, error)
	FindByID(ctx context.Context, collection, id string) (model.Document, error)
	Insert(ctx context.Context, collection string, doc model.Document) error
	// UpdateByID sets every top-level field of patch and returns the document
	// as it is after the update.
	UpdateByID(ctx context.Context, collection, id string, patch model.Document) (model.Document, error)
	DeleteByID(ctx context.Context, collection, id string) (bool, error)
	DeleteMany(ctx context.Context, collection string, filter Filter) (int64, error)
}

// Filter combines its conditions with AND. The zero Filter matches every
// document in the collection.
type Filter struct {
	Equals map[string]string
	In     map[string][]string
	Match  *TextMatch
}

// TextMatch matches documents where any of Fields contains Term,
// ignoring case.
type TextMatch struct {
	Term   string
	Fields []string
}

func Eq(field, value string) Filter {
	return Filter{Equals: map[string]string{field: value}}
}

func (f Filter) And(field, value string) Filter {
	eq := make(map[string]string, len(f.Equals)+1)
	for k, v := range f.Equals {
		eq[k] = v
	}
	eq[field] = value
	f.Equals = eq
	return f
}

// sortedKeys keeps generated queries stable across map iteration order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
