package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDefaults(t *testing.T) {
	p := Normalize(Params{})
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)

	p = Normalize(Params{Page: -3, Limit: 500})
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, MaxLimit, p.Limit)
}

func TestOffsetNeverNegative(t *testing.T) {
	assert.Zero(t, Params{Page: 0, Limit: 10}.Offset())
	assert.Zero(t, Params{Page: -5, Limit: 10}.Offset())
	assert.Equal(t, 24, Params{Page: 3, Limit: 12}.Offset())
}

func TestMetaForCeilsPages(t *testing.T) {
	cases := []struct {
		total int64
		limit int
		pages int
	}{
		{0, 12, 0},
		{1, 12, 1},
		{12, 12, 1},
		{13, 12, 2},
		{25, 12, 3},
	}

	for _, tc := range cases {
		meta := MetaFor(Params{Page: 1, Limit: tc.limit}, tc.total)
		assert.Equal(t, tc.pages, meta.Pages, "total=%d limit=%d", tc.total, tc.limit)
		assert.Equal(t, tc.total, meta.Total)
	}
}
