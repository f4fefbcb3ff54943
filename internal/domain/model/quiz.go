package model

import "time"

const (
	FieldPublished   = "published"
	FieldQuestions   = "questions"
	FieldSubmittedAt = "submittedAt"
)

// SubmittedAtLayout matches JavaScript's Date.toISOString.
const SubmittedAtLayout = "2006-01-02T15:04:05.000Z07:00"

func FormatSubmittedAt(t time.Time) string {
	return t.UTC().Format(SubmittedAtLayout)
}

// ApplyQuizDefaults fills published and questions when the caller left them
// out. Falsy published values (null, false, 0, "") collapse to false; any
// other value is kept as sent.
func ApplyQuizDefaults(quiz Document) {
	if !truthy(quiz[FieldPublished]) {
		quiz[FieldPublished] = false
	}
	if !quiz.Has(FieldQuestions) {
		quiz[FieldQuestions] = []interface{}{}
	}
}

// truthy reports JavaScript truthiness for decoded JSON and BSON values.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case int:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	case string:
		return t != ""
	default:
		return true
	}
}
