package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildDocumentWhere(t *testing.T) {
	tests := []struct {
		name      string
		filter    Filter
		wantWhere string
		wantArgs  []interface{}
	}{
		{
			name:      "collection only",
			filter:    Filter{},
			wantWhere: "collection = $1",
			wantArgs:  []interface{}{"users"},
		},
		{
			name:      "equals sorted by field",
			filter:    Filter{Equals: map[string]string{"user": "u1", "course": "c1"}},
			wantWhere: "collection = $1 AND body->>($2::text) = $3 AND body->>($4::text) = $5",
			wantArgs:  []interface{}{"users", "course", "c1", "user", "u1"},
		},
		{
			name:      "in",
			filter:    Filter{In: map[string][]string{"_id": {"a", "b"}}},
			wantWhere: "collection = $1 AND body->>($2::text) = ANY($3::text[])",
			wantArgs:  []interface{}{"users", "_id", []string{"a", "b"}},
		},
		{
			name: "match escapes like wildcards",
			filter: Filter{
				Equals: map[string]string{"role": "STUDENT"},
				Match:  &TextMatch{Term: "50%_a", Fields: []string{"firstName", "lastName"}},
			},
			wantWhere: `collection = $1 AND body->>($2::text) = $3 AND (body->>($5::text) ILIKE $4 ESCAPE '\' OR body->>($6::text) ILIKE $4 ESCAPE '\')`,
			wantArgs:  []interface{}{"users", "role", "STUDENT", `%50\%\_a%`, "firstName", "lastName"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildDocumentWhere("users", tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestDecodeBody(t *testing.T) {
	doc, err := decodeBody([]byte(`{"_id":"c1","tags":["a"],"meta":{"n":1}}`))
	assert.NoError(t, err)
	assert.Equal(t, "c1", doc.ID())
	assert.Equal(t, []interface{}{"a"}, doc["tags"])
	assert.Equal(t, map[string]interface{}{"n": 1.0}, doc["meta"])

	_, err = decodeBody([]byte(`not json`))
	assert.Error(t, err)
}
