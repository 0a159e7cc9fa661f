package validation

import (
	"strconv"

	"github.com/martinsuchenak/assetcompass/internal/model"
)

// ParsePage reads skip (default 0) and limit (default 100) from their raw
// string forms. Blank means default. There is no upper cap on limit.
func ParsePage(skip, limit string) (model.Page, error) {
	page := model.DefaultPage()
	fields := map[string]string{}

	if skip != "" {
		n, err := strconv.Atoi(skip)
		if err != nil || n < 0 {
			fields["skip"] = "must be a non-negative integer"
		} else {
			page.Skip = n
		}
	}

	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			fields["limit"] = "must be a positive integer"
		} else {
			page.Limit = n
		}
	}

	if len(fields) > 0 {
		return page, &Error{Message: "invalid pagination parameters", Fields: fields}
	}
	return page, nil
}
