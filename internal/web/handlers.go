package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mgierok/guitar-specs2/frontend/internal/logger"
	"github.com/mgierok/guitar-specs2/frontend/internal/site"
	"github.com/mgierok/guitar-specs2/frontend/pkg/catalog"
)

// Catalog is the subset of the catalog client the pages depend on.
type Catalog interface {
	ListGuitars(ctx context.Context) ([]catalog.GuitarListItem, error)
	ListGuitarsPage(ctx context.Context, q catalog.ListQuery) (catalog.ListPage, error)
	GetGuitar(ctx context.Context, slug string) (catalog.GuitarDetail, error)
}

// Handler renders the site pages. Each page issues at most one catalog call.
type Handler struct {
	catalog  Catalog
	site     site.Site
	log      logger.Logger
	renderer *renderer
}

// NewHandler builds the page handler set.
func NewHandler(c Catalog, s site.Site, log logger.Logger) (*Handler, error) {
	if c == nil {
		return nil, errors.New("catalog must not be nil")
	}
	r, err := newRenderer()
	if err != nil {
		return nil, err
	}
	return &Handler{
		catalog:  c,
		site:     s,
		log:      logger.Ensure(log),
		renderer: r,
	}, nil
}

type homeView struct {
	SiteName string
	Cards    []site.Card
}

// Home renders the landing page.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, pageHome, "Home", "/", homeView{
		SiteName: h.site.Name,
		Cards:    h.site.Cards,
	})
}

type listItemView struct {
	Slug      string
	Name      string
	Brand     string
	Model     string
	Year      string
	Thumbnail string
}

type listView struct {
	Items  []listItemView
	Search string
	pagination
}

// Guitars renders the catalog list.
func (h *Handler) Guitars(w http.ResponseWriter, r *http.Request) {
	q := parseListQuery(r)

	page, err := h.catalog.ListGuitarsPage(r.Context(), q)
	if err != nil {
		h.renderError(w, r, err)
		return
	}

	items := make([]listItemView, 0, len(page.Items))
	for _, g := range page.Items {
		item := listItemView{
			Slug:  g.Slug,
			Name:  g.Name,
			Brand: g.Brand,
			Model: g.Model,
		}
		if g.Year != nil {
			item.Year = strconv.Itoa(*g.Year)
		}
		if g.Thumbnail != nil {
			item.Thumbnail = *g.Thumbnail
		}
		items = append(items, item)
	}

	h.page(w, r, http.StatusOK, pageGuitars, "Guitars", "/guitars", listView{
		Items:      items,
		Search:     q.Search,
		pagination: paginate(r, page, q),
	})
}

type mediaView struct {
	Kind    string
	URL     string
	IsImage bool
}

type detailView struct {
	Name        string
	Brand       string
	Model       string
	Type        string
	Year        string
	Description string
	Specs       []specRow
	Media       []mediaView
}

// Guitar renders a single guitar. A blank slug or an upstream 404 yields the not-found page.
func (h *Handler) Guitar(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if strings.TrimSpace(slug) == "" {
		h.NotFound(w, r)
		return
	}

	guitar, err := h.catalog.GetGuitar(r.Context(), slug)
	if err != nil {
		var statusErr *catalog.StatusError
		if errors.Is(err, catalog.ErrSlugRequired) || (errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound) {
			h.NotFound(w, r)
			return
		}
		h.renderError(w, r, err)
		return
	}

	view := detailView{
		Name:  guitar.Name,
		Brand: guitar.Brand,
		Model: guitar.Model,
		Type:  guitar.Type,
		Specs: specRows(guitar.Specs),
	}
	if guitar.Year != nil {
		view.Year = strconv.Itoa(*guitar.Year)
	}
	if guitar.Description != nil {
		view.Description = *guitar.Description
	}
	for _, m := range guitar.Media {
		view.Media = append(view.Media, mediaView{
			Kind:    m.Kind,
			URL:     m.URL,
			IsImage: strings.EqualFold(m.Kind, "image"),
		})
	}

	h.page(w, r, http.StatusOK, pageGuitar, TitleFromSlug(slug), "/guitars/"+slug, view)
}

// Compare renders the comparison placeholder.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, pageCompare, "Compare", "/compare", nil)
}

// NotFound renders the 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusNotFound, pageNotFound, "Not Found", r.URL.Path, nil)
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (h *Handler) page(w http.ResponseWriter, r *http.Request, status int, name, title, path string, content any) {
	doc := document{
		Meta: meta{
			Title:       h.site.Title(title),
			Description: h.site.Description,
			Canonical:   h.site.Canonical(path),
			SiteName:    h.site.Name,
		},
		Content: content,
	}
	if err := h.renderer.render(w, status, name, doc); err != nil {
		h.log.ErrorObj("page render failed", "render_error", map[string]any{
			"request_id": RequestIDFromContext(r.Context()),
			"page":       name,
			"error":      err.Error(),
		})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// renderError logs err and answers with the generic error page.
func (h *Handler) renderError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.ErrorObj("page request failed", "page_error", map[string]any{
		"request_id": RequestIDFromContext(r.Context()),
		"path":       r.URL.Path,
		"error":      err.Error(),
	})
	h.page(w, r, http.StatusInternalServerError, pageError, "Something went wrong", r.URL.Path, nil)
}
