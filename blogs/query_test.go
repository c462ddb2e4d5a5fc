package blogs

import (
	"net/url"
	"strings"
	"testing"
)

func TestParseListQueryDefaults(t *testing.T) {
	q := ParseListQuery(url.Values{})
	if q.Page != 1 {
		t.Fatalf("expected default page 1, got %d", q.Page)
	}
	if q.Limit != 20 {
		t.Fatalf("expected default limit 20, got %d", q.Limit)
	}
	if q.Search != "" || q.Author != "" || q.State != "" || q.SortBy != "" {
		t.Fatalf("expected empty filters, got %+v", q)
	}
}

func TestParseListQueryMalformedPagination(t *testing.T) {
	tests := []struct {
		name      string
		page      string
		limit     string
		wantPage  int
		wantLimit int
	}{
		{"non-numeric page", "abc", "", 1, 20},
		{"zero page", "0", "", 1, 20},
		{"negative page", "-3", "", 1, 20},
		{"non-numeric limit", "", "lots", 1, 20},
		{"zero limit", "", "0", 1, 20},
		{"oversized limit clamped", "", "500", 1, 100},
		{"valid values", "3", "5", 3, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			if tt.page != "" {
				values.Set("page", tt.page)
			}
			if tt.limit != "" {
				values.Set("limit", tt.limit)
			}
			q := ParseListQuery(values)
			if q.Page != tt.wantPage || q.Limit != tt.wantLimit {
				t.Fatalf("got page=%d limit=%d, want page=%d limit=%d",
					q.Page, q.Limit, tt.wantPage, tt.wantLimit)
			}
		})
	}
}

func TestFilterDefaultsToPublished(t *testing.T) {
	where, args := ListQuery{Page: 1, Limit: 20}.filter()
	if !strings.Contains(where, "b.state = $1") {
		t.Fatalf("expected state condition, got %q", where)
	}
	if len(args) != 1 || args[0] != "published" {
		t.Fatalf("expected single 'published' arg, got %v", args)
	}
}

func TestFilterStateOverride(t *testing.T) {
	_, args := ListQuery{Page: 1, Limit: 20, State: "draft"}.filter()
	if len(args) != 1 || args[0] != "draft" {
		t.Fatalf("expected explicit state to override default, got %v", args)
	}
}

func TestFilterSearchAndAuthor(t *testing.T) {
	q := ListQuery{Page: 1, Limit: 20, Search: "go tips", Author: "42"}
	where, args := q.filter()

	if !strings.Contains(where, "b.title ILIKE $2") ||
		!strings.Contains(where, "b.description ILIKE $2") ||
		!strings.Contains(where, "array_to_string(b.tags, ' ') ILIKE $2") {
		t.Fatalf("expected OR-combined search condition, got %q", where)
	}
	if !strings.Contains(where, "b.author = $3") {
		t.Fatalf("expected author condition, got %q", where)
	}
	if len(args) != 3 {
		t.Fatalf("expected 3 args, got %v", args)
	}
	if args[1] != "%go tips%" {
		t.Fatalf("expected wrapped search pattern, got %v", args[1])
	}
	if args[2] != int64(42) {
		t.Fatalf("expected author id 42, got %v", args[2])
	}
}

func TestFilterEscapesLikeMetacharacters(t *testing.T) {
	_, args := ListQuery{Page: 1, Limit: 20, Search: "50%_off"}.filter()
	if args[1] != `%50\%\_off%` {
		t.Fatalf("expected escaped pattern, got %v", args[1])
	}
}

func TestFilterIgnoresNonNumericAuthor(t *testing.T) {
	where, args := ListQuery{Page: 1, Limit: 20, Author: "mallory; DROP TABLE blogs"}.filter()
	if strings.Contains(where, "author") {
		t.Fatalf("expected non-numeric author to be ignored, got %q", where)
	}
	if len(args) != 1 {
		t.Fatalf("expected only the state arg, got %v", args)
	}
}

func TestOrderDefault(t *testing.T) {
	got := ListQuery{}.order()
	if got != "ORDER BY b.created_at DESC" {
		t.Fatalf("expected newest-first default, got %q", got)
	}
}

func TestOrderSortByParsing(t *testing.T) {
	tests := []struct {
		sortBy string
		want   string
	}{
		{"title", "ORDER BY b.title ASC"},
		{"-readCount", "ORDER BY b.read_count DESC"},
		{"-read_count,title", "ORDER BY b.read_count DESC, b.title ASC"},
		{"state,-createdAt", "ORDER BY b.state ASC, b.created_at DESC"},
		// unknown fields are dropped, never interpolated
		{"password;--", "ORDER BY b.created_at DESC"},
		{"bogus,-title", "ORDER BY b.title DESC"},
	}

	for _, tt := range tests {
		if got := (ListQuery{SortBy: tt.sortBy}).order(); got != tt.want {
			t.Fatalf("order(%q) = %q, want %q", tt.sortBy, got, tt.want)
		}
	}
}

func TestOffsetAndPages(t *testing.T) {
	q := ListQuery{Page: 3, Limit: 20}
	if got := q.offset(); got != 40 {
		t.Fatalf("expected offset 40, got %d", got)
	}

	one := ListQuery{Page: 1, Limit: 1}
	if got := one.pages(2); got != 2 {
		t.Fatalf("expected 2 pages for 2 records at limit 1, got %d", got)
	}

	twenty := ListQuery{Page: 1, Limit: 20}
	if got := twenty.pages(0); got != 0 {
		t.Fatalf("expected 0 pages for empty result, got %d", got)
	}
	if got := twenty.pages(41); got != 3 {
		t.Fatalf("expected 3 pages for 41 records at limit 20, got %d", got)
	}
	if got := twenty.pages(40); got != 2 {
		t.Fatalf("expected 2 pages for 40 records at limit 20, got %d", got)
	}
}
