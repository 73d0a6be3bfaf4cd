package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Site describes the public identity of the frontend: naming, metadata and home page cards.
type Site struct {
	Name          string `json:"name" yaml:"name"`
	Description   string `json:"description" yaml:"description"`
	MetadataBase  string `json:"metadata_base" yaml:"metadata_base"`
	TitleTemplate string `json:"title_template" yaml:"title_template"`
	Cards         []Card `json:"cards" yaml:"cards"`
}

// Card is a call-to-action block on the home page.
type Card struct {
	Title    string `json:"title" yaml:"title"`
	Body     string `json:"body" yaml:"body"`
	Href     string `json:"href" yaml:"href"`
	LinkText string `json:"link_text" yaml:"link_text"`
}

// Default returns the built-in Guitar-Specs site.
func Default() Site {
	return sanitize(Site{
		Name:         "Guitar-Specs",
		Description:  "Search, compare, and explore detailed specifications for electric, acoustic, and classical guitars.",
		MetadataBase: "https://www.guitar-specs.com",
	})
}

func defaultCards() []Card {
	return []Card{
		{
			Title:    "Browse the catalog",
			Body:     "Filter by body shape, pickups, scale length, and finish.",
			Href:     "/guitars",
			LinkText: "Go to list",
		},
		{
			Title:    "Compare instruments",
			Body:     "Line up two or more guitars and compare specs side by side.",
			Href:     "/compare",
			LinkText: "Start comparing",
		},
		{
			Title:    "Dive into details",
			Body:     "Every guitar gets a full, searchable spec sheet.",
			Href:     "/guitars/fender-player-stratocaster",
			LinkText: "See an example",
		},
	}
}

// Load reads the site definition from a YAML or JSON file. An empty path yields Default().
func Load(path string) (Site, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Default(), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return Site{}, fmt.Errorf("open site file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return Site{}, fmt.Errorf("read site file: %w", err)
	}

	s, err := parseSite(raw, filepath.Ext(path))
	if err != nil {
		return Site{}, err
	}

	s = sanitize(s)
	if err := validate(s); err != nil {
		return Site{}, err
	}
	return s, nil
}

func parseSite(data []byte, ext string) (Site, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var s Site
		if err := d.fn(data, &s); err == nil {
			return s, nil
		}
	}

	return Site{}, errors.New("site file format not recognized (expected YAML or JSON)")
}

func sanitize(s Site) Site {
	s.Name = strings.TrimSpace(s.Name)
	s.Description = strings.TrimSpace(s.Description)
	s.MetadataBase = strings.TrimRight(strings.TrimSpace(s.MetadataBase), "/")
	s.TitleTemplate = strings.TrimSpace(s.TitleTemplate)
	if s.TitleTemplate == "" {
		s.TitleTemplate = "%s | " + s.Name
	}

	cards := make([]Card, 0, len(s.Cards))
	for _, c := range s.Cards {
		c.Title = strings.TrimSpace(c.Title)
		c.Body = strings.TrimSpace(c.Body)
		c.Href = strings.TrimSpace(c.Href)
		c.LinkText = strings.TrimSpace(c.LinkText)
		cards = append(cards, c)
	}
	if len(cards) == 0 {
		cards = defaultCards()
	}
	s.Cards = cards
	return s
}

func validate(s Site) error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.MetadataBase == "" {
		return errors.New("metadata_base is required")
	}
	u, err := url.Parse(s.MetadataBase)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("metadata_base %q must be an absolute http(s) URL", s.MetadataBase)
	}
	if !strings.Contains(s.TitleTemplate, "%s") {
		return fmt.Errorf("title_template %q must contain %%s", s.TitleTemplate)
	}
	for i, c := range s.Cards {
		if c.Title == "" {
			return fmt.Errorf("cards[%d]: title is required", i)
		}
		if c.Href == "" {
			return fmt.Errorf("cards[%d]: href is required for card %q", i, c.Title)
		}
	}
	return nil
}

// Title renders a page title through the title template. An empty page title
// yields the bare site name.
func (s Site) Title(page string) string {
	page = strings.TrimSpace(page)
	if page == "" {
		return s.Name
	}
	return strings.Replace(s.TitleTemplate, "%s", page, 1)
}

// Canonical returns the absolute URL for path on this site.
func (s Site) Canonical(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return s.MetadataBase + path
}
