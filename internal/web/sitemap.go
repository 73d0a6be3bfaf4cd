package web

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

var staticPaths = []string{"/", "/guitars", "/compare"}

// Sitemap lists the static pages followed by every guitar in the catalog.
func (h *Handler) Sitemap(w http.ResponseWriter, r *http.Request) {
	guitars, err := h.catalog.ListGuitars(r.Context())
	if err != nil {
		h.log.ErrorObj("sitemap build failed", "sitemap_error", map[string]any{
			"request_id": RequestIDFromContext(r.Context()),
			"error":      err.Error(),
		})
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	set := urlSet{Xmlns: sitemapNamespace, URLs: make([]sitemapURL, 0, len(staticPaths)+len(guitars))}
	for _, p := range staticPaths {
		set.URLs = append(set.URLs, sitemapURL{Loc: h.site.Canonical(p)})
	}
	for _, g := range guitars {
		if strings.TrimSpace(g.Slug) == "" {
			continue
		}
		set.URLs = append(set.URLs, sitemapURL{Loc: h.site.Canonical("/guitars/" + url.PathEscape(g.Slug))})
	}

	out, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(out)
}

// Robots allows every crawler and points it at the sitemap.
func (h *Handler) Robots(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "User-agent: *\nAllow: /\n\nSitemap: %s\n", h.site.Canonical("/sitemap.xml"))
}
