package model

// Collection names in the document store.
const (
	CollectionUsers       = "users"
	CollectionCourses     = "courses"
	CollectionModules     = "modules"
	CollectionAssignments = "assignments"
	CollectionQuizzes     = "quizzes"
	CollectionQuestions   = "questions"
	CollectionAttempts    = "attempts"
	CollectionEnrollments = "enrollments"
)

// Common document fields.
const (
	FieldID     = "_id"
	FieldCourse = "course"
	FieldQuiz   = "quiz"
	FieldUser   = "user"
)

// Document is a schemaless record as stored and as sent over the wire.
// Every document carries its string identifier under "_id".
type Document map[string]interface{}

func (d Document) ID() string {
	return d.String(FieldID)
}

func (d Document) SetID(id string) {
	d[FieldID] = id
}

// String returns the field as a string, or "" when absent or not a string.
func (d Document) String(field string) string {
	s, _ := d[field].(string)
	return s
}

// Has reports whether field is present and not null.
func (d Document) Has(field string) bool {
	v, ok := d[field]
	return ok && v != nil
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case Document:
		return t.Clone()
	case map[string]interface{}:
		return map[string]interface{}(Document(t).Clone())
	case []interface{}:
		out := make([]interface{}, len(t))
		for i := range t {
			out[i] = cloneValue(t[i])
		}
		return out
	default:
		return v
	}
}
