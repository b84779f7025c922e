package httpresp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/listindia/listindia-api/internal/httpresp"
)

func TestNewPagination(t *testing.T) {
	tests := []struct {
		name            string
		total           int64
		limit, offset   int
		wantHasMore     bool
		wantTotalPages  int
		wantCurrentPage int
	}{
		{"first_of_many", 95, 20, 0, true, 5, 1},
		{"middle_page", 95, 20, 40, true, 5, 3},
		{"last_partial_page", 95, 20, 80, false, 5, 5},
		{"exact_fit", 40, 20, 20, false, 2, 2},
		{"empty", 0, 20, 0, false, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := httpresp.NewPagination(tt.total, tt.limit, tt.offset)

			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.wantHasMore, p.HasMore)
			assert.Equal(t, tt.wantTotalPages, p.TotalPages)
			assert.Equal(t, tt.wantCurrentPage, p.CurrentPage)
		})
	}
}
