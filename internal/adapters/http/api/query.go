package api

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/yogicgames/internal/validation"
)

// listParams mirrors the query string of GET /games.
type listParams struct {
	Search   string `query:"q" validate:"max=200"`
	Tier     string `query:"tier" validate:"max=100"`
	Platform string `query:"platform" validate:"max=100"`
	Rating   string `query:"rating" validate:"max=20"`
	Sort     string `query:"sort" validate:"omitempty,oneof=rank score title name"`
	Limit    int    `query:"limit" validate:"gte=0"`
}

// countParams mirrors the optional limit (or k) of the ranking endpoints.
type countParams struct {
	Count int `query:"limit" validate:"gte=0"`
}

// Parse errors carry no kind; handlers classify them with WrapKind.

func parseListParams(q url.Values, maxLimit int) (listParams, error) {
	limit, _, err := optionalCount(q, "limit", maxLimit)
	if err != nil {
		return listParams{}, err
	}
	p := listParams{
		Search:   strings.TrimSpace(q.Get("q")),
		Tier:     strings.TrimSpace(q.Get("tier")),
		Platform: strings.TrimSpace(q.Get("platform")),
		Rating:   strings.TrimSpace(q.Get("rating")),
		Sort:     strings.ToLower(strings.TrimSpace(q.Get("sort"))),
		Limit:    limit,
	}
	if err := validation.Struct(p); err != nil {
		return listParams{}, err //nolint:wrapcheck // classified by the handler
	}
	return p, nil
}

// parseLimit reads the named count. Absent and zero both yield 0, which the
// service treats as "use the default".
func parseLimit(q url.Values, name string, maxLimit int) (int, error) {
	n, _, err := optionalCount(q, name, maxLimit)
	return n, err
}

// optionalCount reads the named non-negative integer no larger than
// maxLimit. ok is false when the parameter is absent or blank.
func optionalCount(q url.Values, name string, maxLimit int) (n int, ok bool, err error) {
	raw := strings.TrimSpace(q.Get(name))
	if raw == "" {
		return 0, false, nil
	}
	n, err = strconv.Atoi(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%s must be an integer", name)
	}
	if err := validation.Struct(countParams{Count: n}); err != nil {
		return 0, false, fmt.Errorf("%s: %w", name, err)
	}
	if n > maxLimit {
		return 0, false, fmt.Errorf("%s exceeds %d", name, maxLimit)
	}
	return n, true, nil
}
