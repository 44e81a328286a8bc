package helpers

import "testing"

func TestCalculateOffsetLimit(t *testing.T) {
	tests := []struct {
		name       string
		page, size int
		wantOffset uint64
		wantLimit  int
	}{
		{"first page", 1, 10, 0, 10},
		{"third page", 3, 10, 20, 10},
		{"zero page defaults to first", 0, 10, 0, 10},
		{"negative page defaults to first", -2, 10, 0, 10},
		{"zero size defaults", 2, 0, 10, DefaultPageSize},
		{"oversized size clamps to default", 1, 500, 0, DefaultPageSize},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			offset, limit := CalculateOffsetLimit(tc.page, tc.size)
			if offset != tc.wantOffset || limit != tc.wantLimit {
				t.Errorf("got offset=%d limit=%d, want offset=%d limit=%d",
					offset, limit, tc.wantOffset, tc.wantLimit)
			}
		})
	}
}

func TestNewPaginationInfo(t *testing.T) {
	info := NewPaginationInfo(25, 2, 10)
	if info.TotalPages != 3 {
		t.Errorf("want 3 total pages, got %d", info.TotalPages)
	}
	if info.CurrentPage != 2 || info.PageSize != 10 || info.TotalItems != 25 {
		t.Errorf("unexpected info: %+v", info)
	}
}

func TestNewPaginationInfoEmpty(t *testing.T) {
	info := NewPaginationInfo(0, 1, 10)
	if info.TotalPages != 1 || info.CurrentPage != 1 {
		t.Errorf("empty result set should still report one page, got %+v", info)
	}
}

func TestNewPaginationInfoClampsPastEnd(t *testing.T) {
	info := NewPaginationInfo(5, 9, 10)
	if info.CurrentPage != 1 {
		t.Errorf("page beyond the end should clamp, got %d", info.CurrentPage)
	}
}
