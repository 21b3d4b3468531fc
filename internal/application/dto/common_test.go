package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/domain"
)

func TestPageQuery_Normalize(t *testing.T) {
	q := dto.PageQuery{}.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, dto.DefaultPerPage, q.PerPage)

	q = dto.PageQuery{Page: 3, PerPage: 500}.Normalize()
	assert.Equal(t, dto.MaxPerPage, q.PerPage, "per_page se limita a 100")
	assert.Equal(t, 200, dto.PageQuery{Page: 3, PerPage: 500}.Offset())
}

func TestNewPaginated(t *testing.T) {
	p := dto.NewPaginated([]int{1, 2}, 45, dto.PageQuery{Page: 2, PerPage: 20})
	assert.Equal(t, 3, p.Pages)
	assert.True(t, p.HasPrev)
	assert.True(t, p.HasNext)

	last := dto.NewPaginated([]int{1}, 45, dto.PageQuery{Page: 3, PerPage: 20})
	assert.False(t, last.HasNext)

	empty := dto.NewPaginated[int](nil, 0, dto.PageQuery{})
	assert.NotNil(t, empty.Items, "items vacío se serializa como []")
	assert.Equal(t, 0, empty.Pages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}

func TestParseDate(t *testing.T) {
	d, err := dto.ParseDate("2026-02-28")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-28", dto.FormatDate(d))

	_, err = dto.ParseDate("28/02/2026")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	none, err := dto.ParseOptionalDate("")
	require.NoError(t, err)
	assert.Nil(t, none)
	assert.Equal(t, "", dto.FormatDatePtr(none))
}
