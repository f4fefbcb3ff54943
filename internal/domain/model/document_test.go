package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDocumentClone(t *testing.T) {
	orig := Document{
		"_id":  "c1",
		"tags": []interface{}{"a", map[string]interface{}{"k": "v"}},
		"meta": map[string]interface{}{"credits": 4.0},
	}
	cp := orig.Clone()
	assert.Equal(t, orig, cp)

	cp["meta"].(map[string]interface{})["credits"] = 1.0
	cp["tags"].([]interface{})[1].(map[string]interface{})["k"] = "changed"

	assert.Equal(t, 4.0, orig["meta"].(map[string]interface{})["credits"])
	assert.Equal(t, "v", orig["tags"].([]interface{})[1].(map[string]interface{})["k"])
	assert.Nil(t, Document(nil).Clone())
}

func TestDocumentAccessors(t *testing.T) {
	d := Document{"_id": "u1", "age": 3.0, "nothing": nil}
	assert.Equal(t, "u1", d.ID())
	assert.Equal(t, "", d.String("age"))
	assert.True(t, d.Has("age"))
	assert.False(t, d.Has("nothing"))
	assert.False(t, d.Has("missing"))
}

func TestApplyQuizDefaults(t *testing.T) {
	q := Document{"title": "Q1"}
	ApplyQuizDefaults(q)
	assert.Equal(t, false, q[FieldPublished])
	assert.Equal(t, []interface{}{}, q[FieldQuestions])

	kept := Document{"published": true, "questions": []interface{}{"x"}}
	ApplyQuizDefaults(kept)
	assert.Equal(t, true, kept[FieldPublished])
	assert.Equal(t, []interface{}{"x"}, kept[FieldQuestions])

	tests := []struct {
		published interface{}
		want      interface{}
	}{
		{nil, false},
		{false, false},
		{0.0, false},
		{"", false},
		{"yes", "yes"},
		{1.0, 1.0},
		{int32(2), int32(2)},
		{int64(0), false},
		{map[string]interface{}{}, map[string]interface{}{}},
	}
	for _, tt := range tests {
		q := Document{"published": tt.published}
		ApplyQuizDefaults(q)
		assert.Equal(t, tt.want, q[FieldPublished], "published=%#v", tt.published)
	}
}

func TestFormatSubmittedAt(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 123456789, time.FixedZone("EST", -5*3600))
	assert.Equal(t, "2024-03-09T19:05:07.123Z", FormatSubmittedAt(ts))
}

func TestEnrollmentID(t *testing.T) {
	e := NewEnrollment("u1", "RS101")
	assert.Equal(t, "u1-RS101", e.ID())
	assert.Equal(t, "u1", e[FieldUser])
	assert.Equal(t, "RS101", e[FieldCourse])
}

func TestSnapshotOf(t *testing.T) {
	s := SnapshotOf(Document{"_id": "u1", "username": "alice", "password": "123", "role": "STUDENT"})
	assert.Equal(t, SessionUser{ID: "u1", Username: "alice", Role: "STUDENT"}, s)
}
