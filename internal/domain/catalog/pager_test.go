package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/majesty-shop/internal/domain/entity"
)

func products(n int) []entity.Product {
	out := make([]entity.Product, n)
	for i := range out {
		out[i] = entity.Product{ID: int64(i + 1)}
	}
	return out
}

func TestPager_BatchesCoverEveryItemOnceInOrder(t *testing.T) {
	for _, n := range []int{0, 1, 5, 19, 20, 21, 40, 57} {
		for _, size := range []int{1, 3, 20, 25} {
			p := NewPager(products(n))

			var seen []int64
			batches := 0
			for p.HasMore() {
				batch := p.NextBatch(size)
				require.NotEmpty(t, batch, "n=%d size=%d", n, size)
				batches++
				for _, item := range batch {
					seen = append(seen, item.ID)
				}
			}

			assert.Equal(t, (n+size-1)/size, batches, "n=%d size=%d", n, size)
			require.Len(t, seen, n)
			for i, id := range seen {
				assert.Equal(t, int64(i+1), id)
			}
		}
	}
}

func TestPager_CursorAdvancesPastEnd(t *testing.T) {
	p := NewPager(products(5))

	assert.Len(t, p.NextBatch(4), 4)
	assert.Equal(t, 4, p.Cursor())

	assert.Len(t, p.NextBatch(4), 1)
	assert.Equal(t, 8, p.Cursor())
	assert.False(t, p.HasMore())

	assert.Empty(t, p.NextBatch(4))
	assert.Equal(t, 12, p.Cursor())
	assert.Equal(t, 5, p.Len())
}

func TestPager_EmptyList(t *testing.T) {
	p := NewPager(nil)
	assert.False(t, p.HasMore())
	assert.Empty(t, p.NextBatch(20))
}
