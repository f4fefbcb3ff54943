package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestFilterToBSON(t *testing.T) {
	assert.Equal(t, bson.M{}, filterToBSON(Filter{}))

	assert.Equal(t,
		bson.M{"user": "u1", "course": "c1"},
		filterToBSON(Eq("user", "u1").And("course", "c1")))

	assert.Equal(t,
		bson.M{"_id": bson.M{"$in": []string{}}},
		filterToBSON(Filter{In: map[string][]string{"_id": nil}}))

	got := filterToBSON(Filter{Match: &TextMatch{Term: "a.b", Fields: []string{"firstName", "lastName"}}})
	assert.Equal(t, bson.M{"$or": bson.A{
		bson.M{"firstName": bson.M{"$regex": `a\.b`, "$options": "i"}},
		bson.M{"lastName": bson.M{"$regex": `a\.b`, "$options": "i"}},
	}}, got)
}
