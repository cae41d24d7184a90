package dto_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/storekeeper-api/internal/application/dto"
)

func TestPageRequest_Normalize(t *testing.T) {
	p := dto.PageRequest{}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, 0, p.Offset())

	p = dto.PageRequest{Page: 3, Limit: 500}
	p.Normalize()
	assert.Equal(t, 100, p.Limit)
	assert.Equal(t, 200, p.Offset())
}

func TestPageRequest_PaginaEnormeNoDesborda(t *testing.T) {
	p := dto.PageRequest{Page: math.MaxInt / 10, Limit: 100}
	p.Normalize()
	assert.Equal(t, dto.MaxPage, p.Page)
	assert.Equal(t, (dto.MaxPage-1)*100, p.Offset())
	assert.GreaterOrEqual(t, p.Offset(), 0)
}

func TestNewPagination_PagesEsTecho(t *testing.T) {
	for _, tc := range []struct{ total, limit, pages int }{
		{0, 10, 0}, {1, 10, 1}, {10, 10, 1}, {11, 10, 2}, {25, 5, 5},
	} {
		got := dto.NewPagination(dto.PageRequest{Page: 1, Limit: tc.limit}, tc.total)
		assert.Equal(t, tc.pages, got.Pages, "total=%d limit=%d", tc.total, tc.limit)
		assert.Equal(t, tc.total, got.Total)
	}
}
