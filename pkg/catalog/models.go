package catalog

// GuitarListItem is the summary shape returned by the list endpoint.
type GuitarListItem struct {
	ID        string  `json:"id"`
	Slug      string  `json:"slug"`
	Name      string  `json:"name"`
	Brand     string  `json:"brand"`
	Model     string  `json:"model"`
	Type      string  `json:"type"`
	Year      *int    `json:"year,omitempty"`
	Thumbnail *string `json:"thumbnail,omitempty"`
}

// GuitarDetail is the full record returned by the detail endpoint.
type GuitarDetail struct {
	ID          string            `json:"id"`
	Slug        string            `json:"slug"`
	Name        string            `json:"name"`
	Brand       string            `json:"brand"`
	Model       string            `json:"model"`
	Type        string            `json:"type"`
	Year        *int              `json:"year,omitempty"`
	Description *string           `json:"description,omitempty"`
	Specs       map[string]string `json:"specs"`
	Media       []Media           `json:"media"`
}

// Media is a single media attachment of a guitar.
type Media struct {
	Kind string `json:"kind"`
	URL  string `json:"url"`
}

// ListPage is the list endpoint envelope.
type ListPage struct {
	Items    []GuitarListItem `json:"items"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
}

// ListQuery holds optional list parameters. Zero values are not sent.
type ListQuery struct {
	Page     int
	PageSize int
	Sort     string
	Filters  []string // "key:value"
	Search   string
}
