package catalog

import "github.com/oksasatya/majesty-shop/internal/domain/entity"

// Pager hands out fixed-size batches of an in-memory product list.
// The cursor advances by the full page size even past the end, so callers
// check HasMore instead of comparing batch sizes. There is no reset: a reload
// builds a new Pager.
type Pager struct {
	items  []entity.Product
	cursor int
}

func NewPager(items []entity.Product) *Pager {
	return &Pager{items: items}
}

// NextBatch returns items[cursor, cursor+pageSize) clipped to the list length.
func (p *Pager) NextBatch(pageSize int) []entity.Product {
	if pageSize < 0 {
		pageSize = 0
	}
	start := min(p.cursor, len(p.items))
	end := min(p.cursor+pageSize, len(p.items))
	p.cursor += pageSize
	return p.items[start:end]
}

func (p *Pager) HasMore() bool { return p.cursor < len(p.items) }

func (p *Pager) Len() int { return len(p.items) }

func (p *Pager) Cursor() int { return p.cursor }
