package web

import (
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mgierok/guitar-specs2/frontend/pkg/catalog"
)

func TestTitleFromSlug(t *testing.T) {
	cases := map[string]string{
		"fender-player-stratocaster": "Fender Player Stratocaster",
		"prs":                        "Prs",
		"":                           "",
		"a--b":                       "A  B",
		"éclair-model":               "Éclair Model",
	}
	for in, want := range cases {
		if got := TitleFromSlug(in); got != want {
			t.Errorf("TitleFromSlug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSpecRowsSortedWithLabels(t *testing.T) {
	got := specRows(map[string]string{
		"scale_length": "25.5",
		"body":         "Alder",
		"fret_count":   "22",
	})
	want := []specRow{
		{Label: "body", Value: "Alder"},
		{Label: "fret count", Value: "22"},
		{Label: "scale length", Value: "25.5"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("spec rows mismatch (-want +got):\n%s", diff)
	}
}

func TestParseListQuery(t *testing.T) {
	req := httptest.NewRequest("GET", "/guitars?page=3&pageSize=-1&sort=+name&q=%20les%20paul%20&filter=brand:gibson&filter=:x&filter=nope", nil)
	got := parseListQuery(req)
	want := catalog.ListQuery{
		Page:    3,
		Sort:    "name",
		Filters: []string{"brand:gibson"},
		Search:  "les paul",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("query mismatch (-want +got):\n%s", diff)
	}
}

func TestPaginate(t *testing.T) {
	cases := []struct {
		name   string
		target string
		page   catalog.ListPage
		want   pagination
	}{
		{
			name:   "no envelope",
			target: "/guitars",
			want:   pagination{Page: 1, TotalPages: 1},
		},
		{
			name:   "first of two",
			target: "/guitars",
			page:   catalog.ListPage{Total: 30, Page: 1, PageSize: 20},
			want:   pagination{Page: 1, TotalPages: 2, NextURL: "/guitars?page=2"},
		},
		{
			name:   "last page keeps params",
			target: "/guitars?page=2&sort=name",
			page:   catalog.ListPage{Total: 30, Page: 2, PageSize: 20},
			want:   pagination{Page: 2, TotalPages: 2, PrevURL: "/guitars?page=1&sort=name"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tc.target, nil)
			got := paginate(req, tc.page, parseListQuery(req))
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("pagination mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
