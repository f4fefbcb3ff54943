package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"kambaz_api/internal/common"
	"kambaz_api/internal/domain/model"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// decodeDocument reads a JSON object body. An empty body is an empty
// document.
func decodeDocument(r *http.Request) (model.Document, error) {
	doc := model.Document{}
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return model.Document{}, nil
		}
		return nil, common.BadRequest("Invalid request payload: " + err.Error())
	}
	if doc == nil {
		// Body was JSON null.
		doc = model.Document{}
	}
	return doc, nil
}

// decodeAndValidate decodes a JSON body into dst and runs its validate tags.
func decodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return common.BadRequest("Invalid request payload: " + err.Error())
	}
	if err := validate.Struct(dst); err != nil {
		return common.BadRequest("Invalid request: " + err.Error())
	}
	return nil
}

func respondWithDocuments(w http.ResponseWriter, docs []model.Document) {
	if docs == nil {
		docs = []model.Document{}
	}
	common.RespondWithJSON(w, http.StatusOK, docs)
}
