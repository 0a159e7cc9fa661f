package api

import (
	"net/http"

	"github.com/martinsuchenak/assetcompass/internal/model"
	"github.com/martinsuchenak/assetcompass/internal/validation"
)

// parsePage reads the skip and limit query parameters.
func parsePage(r *http.Request) (model.Page, error) {
	q := r.URL.Query()
	return validation.ParsePage(q.Get("skip"), q.Get("limit"))
}
