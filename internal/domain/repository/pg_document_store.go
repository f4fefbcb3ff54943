package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"kambaz_api/internal/common"
	"kambaz_api/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// Documents of every collection share one JSONB table. seq preserves
// insertion order for list queries.
const documentsSchema = `
CREATE TABLE IF NOT EXISTS documents (
    seq        BIGSERIAL,
    collection TEXT NOT NULL,
    id         TEXT NOT NULL,
    body       JSONB NOT NULL,
    PRIMARY KEY (collection, id)
)`

type pgDocumentStore struct {
	db *sql.DB
}

func NewPgDocumentStore(db *sql.DB) DocumentStore {
	return &pgDocumentStore{db: db}
}

// EnsureDocumentsSchema creates the documents table when it is missing.
func EnsureDocumentsSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, documentsSchema); err != nil {
		return fmt.Errorf("EnsureDocumentsSchema: %w", err)
	}
	return nil
}

func (r *pgDocumentStore) Find(ctx context.Context, collection string, filter Filter) ([]model.Document, error) {
	where, args := buildDocumentWhere(collection, filter)
	query := "SELECT body FROM documents WHERE " + where + " ORDER BY seq"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgDocumentStore.Find query: %w", err)
	}
	defer rows.Close()

	docs := []model.Document{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("pgDocumentStore.Find scan: %w", err)
		}
		doc, err := decodeBody(body)
		if err != nil {
			return nil, fmt.Errorf("pgDocumentStore.Find decode: %w", err)
		}
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgDocumentStore.Find rows.Err: %w", err)
	}
	return docs, nil
}

func (r *pgDocumentStore) FindByID(ctx context.Context, collection, id string) (model.Document, error) {
	query := `SELECT body FROM documents WHERE collection = $1 AND id = $2`
	var body []byte
	err := r.db.QueryRowContext(ctx, query, collection, id).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgDocumentStore.FindByID: %w", err)
	}
	return decodeBody(body)
}

func (r *pgDocumentStore) Insert(ctx context.Context, collection string, doc model.Document) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("pgDocumentStore.Insert marshal: %w", err)
	}
	query := `INSERT INTO documents (collection, id, body) VALUES ($1, $2, $3::jsonb)`
	_, err = r.db.ExecContext(ctx, query, collection, doc.ID(), string(body))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("document %s already exists in %s: %w", doc.ID(), collection, common.ErrConflict)
		}
		return fmt.Errorf("pgDocumentStore.Insert: %w", err)
	}
	return nil
}

func (r *pgDocumentStore) UpdateByID(ctx context.Context, collection, id string, patch model.Document) (model.Document, error) {
	set := patch.Clone()
	delete(set, model.FieldID)
	body, err := json.Marshal(set)
	if err != nil {
		return nil, fmt.Errorf("pgDocumentStore.UpdateByID marshal: %w", err)
	}

	// jsonb || replaces top-level keys, the same shape as a mongo $set.
	query := `UPDATE documents SET body = body || $3::jsonb
	          WHERE collection = $1 AND id = $2
	          RETURNING body`
	var updated []byte
	err = r.db.QueryRowContext(ctx, query, collection, id, string(body)).Scan(&updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgDocumentStore.UpdateByID: %w", err)
	}
	return decodeBody(updated)
}

func (r *pgDocumentStore) DeleteByID(ctx context.Context, collection, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM documents WHERE collection = $1 AND id = $2`, collection, id)
	if err != nil {
		return false, fmt.Errorf("pgDocumentStore.DeleteByID: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("pgDocumentStore.DeleteByID rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *pgDocumentStore) DeleteMany(ctx context.Context, collection string, filter Filter) (int64, error) {
	where, args := buildDocumentWhere(collection, filter)
	res, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE "+where, args...)
	if err != nil {
		return 0, fmt.Errorf("pgDocumentStore.DeleteMany: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pgDocumentStore.DeleteMany rows affected: %w", err)
	}
	return n, nil
}

// buildDocumentWhere turns a Filter into a parameterized WHERE clause. Field
// names are bound as parameters too, never spliced into the SQL text.
func buildDocumentWhere(collection string, f Filter) (string, []interface{}) {
	conditions := []string{"collection = $1"}
	args := []interface{}{collection}
	argID := 2

	for _, field := range sortedKeys(f.Equals) {
		conditions = append(conditions, fmt.Sprintf("body->>($%d::text) = $%d", argID, argID+1))
		args = append(args, field, f.Equals[field])
		argID += 2
	}

	for _, field := range sortedKeys(f.In) {
		conditions = append(conditions, fmt.Sprintf("body->>($%d::text) = ANY($%d::text[])", argID, argID+1))
		args = append(args, field, f.In[field])
		argID += 2
	}

	if f.Match != nil && len(f.Match.Fields) > 0 {
		termArg := argID
		args = append(args, "%"+escapeLike(f.Match.Term)+"%")
		argID++

		ors := make([]string, 0, len(f.Match.Fields))
		for _, field := range f.Match.Fields {
			ors = append(ors, fmt.Sprintf(`body->>($%d::text) ILIKE $%d ESCAPE '\'`, argID, termArg))
			args = append(args, field)
			argID++
		}
		conditions = append(conditions, "("+strings.Join(ors, " OR ")+")")
	}

	return strings.Join(conditions, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func decodeBody(body []byte) (model.Document, error) {
	var doc model.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}
