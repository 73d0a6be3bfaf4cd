package web

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mgierok/guitar-specs2/frontend/pkg/catalog"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
)

// TitleFromSlug turns "fender-player-stratocaster" into "Fender Player Stratocaster".
func TitleFromSlug(slug string) string {
	parts := strings.Split(slug, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		first, size := utf8.DecodeRuneInString(part)
		parts[i] = string(unicode.ToUpper(first)) + part[size:]
	}
	return strings.Join(parts, " ")
}

// SpecLabel renders a spec attribute name for display.
func SpecLabel(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

type specRow struct {
	Label string
	Value string
}

// specRows flattens the spec map in key order.
func specRows(specs map[string]string) []specRow {
	keys := make([]string, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]specRow, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, specRow{Label: SpecLabel(k), Value: specs[k]})
	}
	return rows
}

// parseListQuery reads the list page parameters. Only values present in the
// request are forwarded upstream.
func parseListQuery(r *http.Request) catalog.ListQuery {
	values := r.URL.Query()

	var filters []string
	for _, value := range values["filter"] {
		if key, val, ok := strings.Cut(value, ":"); ok && strings.TrimSpace(key) != "" && strings.TrimSpace(val) != "" {
			filters = append(filters, value)
		}
	}

	return catalog.ListQuery{
		Page:     parsePositive(values.Get("page")),
		PageSize: parsePositive(values.Get("pageSize")),
		Sort:     strings.TrimSpace(values.Get("sort")),
		Filters:  filters,
		Search:   strings.TrimSpace(values.Get("q")),
	}
}

func parsePositive(value string) int {
	if value == "" {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0
	}
	return parsed
}

type pagination struct {
	Page       int
	TotalPages int
	PrevURL    string
	NextURL    string
}

// paginate derives prev/next links from the upstream envelope, keeping the
// other query parameters of the current request.
func paginate(r *http.Request, page catalog.ListPage, q catalog.ListQuery) pagination {
	current := page.Page
	if current <= 0 {
		current = q.Page
	}
	if current <= 0 {
		current = defaultPage
	}
	size := page.PageSize
	if size <= 0 {
		size = q.PageSize
	}
	if size <= 0 {
		size = defaultPageSize
	}

	p := pagination{Page: current, TotalPages: current}
	if page.Total <= 0 {
		return p
	}
	p.TotalPages = (page.Total + size - 1) / size
	if p.TotalPages < current {
		p.TotalPages = current
	}

	link := func(n int) string {
		values := r.URL.Query()
		values.Set("page", strconv.Itoa(n))
		return (&url.URL{Path: r.URL.Path, RawQuery: values.Encode()}).String()
	}
	if current > 1 {
		p.PrevURL = link(current - 1)
	}
	if current < p.TotalPages {
		p.NextURL = link(current + 1)
	}
	return p
}
