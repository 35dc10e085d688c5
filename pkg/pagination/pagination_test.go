package pagination_test

import (
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/JaimeStill/lox/pkg/pagination"
)

var testConfig = pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}

func TestPageRequest_Normalize(t *testing.T) {
	tests := []struct {
		name    string
		request pagination.PageRequest
		want    pagination.PageRequest
	}{
		{"valid values unchanged", pagination.PageRequest{Page: 2, PageSize: 25}, pagination.PageRequest{Page: 2, PageSize: 25}},
		{"zero page becomes 1", pagination.PageRequest{Page: 0, PageSize: 25}, pagination.PageRequest{Page: 1, PageSize: 25}},
		{"negative page becomes 1", pagination.PageRequest{Page: -1, PageSize: 25}, pagination.PageRequest{Page: 1, PageSize: 25}},
		{"zero page size gets default", pagination.PageRequest{Page: 1}, pagination.PageRequest{Page: 1, PageSize: 20}},
		{"page size capped", pagination.PageRequest{Page: 1, PageSize: 200}, pagination.PageRequest{Page: 1, PageSize: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.request.Normalize(testConfig)
			if diff := cmp.Diff(tt.want, tt.request); diff != "" {
				t.Errorf("Normalize mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPageRequest_Offset(t *testing.T) {
	tests := []struct {
		page, pageSize, want int
	}{
		{1, 20, 0},
		{2, 20, 20},
		{3, 10, 20},
		{10, 25, 225},
	}

	for _, tt := range tests {
		req := pagination.PageRequest{Page: tt.page, PageSize: tt.pageSize}
		if got := req.Offset(); got != tt.want {
			t.Errorf("Offset(%d, %d) = %d, want %d", tt.page, tt.pageSize, got, tt.want)
		}
	}
}

func TestPageRequestFromQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  pagination.PageRequest
	}{
		{"empty", "", pagination.PageRequest{Page: 1, PageSize: 20}},
		{"explicit", "page=3&page_size=5", pagination.PageRequest{Page: 3, PageSize: 5}},
		{"garbage", "page=x&page_size=y", pagination.PageRequest{Page: 1, PageSize: 20}},
		{"over max", "page_size=1000", pagination.PageRequest{Page: 1, PageSize: 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			got := pagination.PageRequestFromQuery(values, testConfig)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("PageRequestFromQuery mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewPageResult(t *testing.T) {
	tests := []struct {
		name           string
		total          int
		pageSize       int
		wantTotalPages int
	}{
		{"exact division", 100, 20, 5},
		{"with remainder", 101, 20, 6},
		{"empty", 0, 20, 1},
		{"fewer than a page", 3, 20, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := pagination.NewPageResult([]string{"a"}, tt.total, 1, tt.pageSize)
			if result.TotalPages != tt.wantTotalPages {
				t.Errorf("TotalPages = %d, want %d", result.TotalPages, tt.wantTotalPages)
			}
		})
	}
}

func TestNewPageResult_NilData(t *testing.T) {
	result := pagination.NewPageResult[string](nil, 0, 1, 20)
	if result.Data == nil {
		t.Fatal("Data is nil, want empty slice")
	}
}

func TestConfig_Finalize(t *testing.T) {
	t.Setenv("TEST_PAGE_DEFAULT", "10")
	t.Setenv("TEST_PAGE_MAX", "50")

	var cfg pagination.Config
	err := cfg.Finalize(&pagination.ConfigEnv{
		DefaultPageSize: "TEST_PAGE_DEFAULT",
		MaxPageSize:     "TEST_PAGE_MAX",
	})
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	want := pagination.Config{DefaultPageSize: 10, MaxPageSize: 50}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestConfig_Finalize_Invalid(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 50, MaxPageSize: 10}
	if err := cfg.Finalize(nil); err == nil {
		t.Fatal("expected error when default exceeds max")
	}
}

func TestConfig_Merge(t *testing.T) {
	cfg := pagination.Config{DefaultPageSize: 20, MaxPageSize: 100}
	cfg.Merge(&pagination.Config{MaxPageSize: 40})

	want := pagination.Config{DefaultPageSize: 20, MaxPageSize: 40}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}
