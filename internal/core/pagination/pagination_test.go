package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	u := func(v uint) *uint { return &v }
	for _, tc := range []struct {
		name   string
		filter *Filter
		limit  uint
		offset uint
	}{
		{name: "nil filter", filter: nil, limit: defaultMaxResults, offset: 0},
		{name: "defaults", filter: NewFilter(nil, nil), limit: defaultMaxResults, offset: 0},
		{name: "zero max results", filter: NewFilter(u(0), u(2)), limit: defaultMaxResults, offset: defaultMaxResults},
		{name: "page zero", filter: NewFilter(u(10), u(0)), limit: 10, offset: 0},
		{name: "first page", filter: NewFilter(u(10), u(1)), limit: 10, offset: 0},
		{name: "third page", filter: NewFilter(u(10), u(3)), limit: 10, offset: 20},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.limit, tc.filter.GetLimit())
			assert.Equal(t, tc.offset, tc.filter.GetOffset())
		})
	}
}
