// Package pagination slices ordered result sets into fixed-size pages.
// Out-of-range page numbers clamp to the nearest valid page instead of
// erroring, so every listing request renders something.
package pagination

import "strconv"

const DefaultPageSize = 10

// Page 分页元数据 + 当前页条目
type Page[T any] struct {
	Items      []T
	Number     int
	Size       int
	TotalItems int64
	TotalPages int
}

func (p *Page[T]) HasNext() bool { return p.Number < p.TotalPages }
func (p *Page[T]) HasPrev() bool { return p.Number > 1 }
func (p *Page[T]) Next() int     { return p.Number + 1 }
func (p *Page[T]) Prev() int     { return p.Number - 1 }

// ParsePage 解析 ?page= 参数；非法或缺省取 1
func ParsePage(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Clamp 把请求页码收敛到 [1, totalPages]；空集合视为 1 页
func Clamp(requested int, totalItems int64, size int) (page, totalPages int) {
	if size < 1 {
		size = DefaultPageSize
	}
	totalPages = int((totalItems + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}
	page = requested
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	return page, totalPages
}

// Offset 返回页起始偏移
func Offset(page, size int) int { return (page - 1) * size }

// NewPage 组装页对象；items 是仓储层已按 offset/limit 取出的切片
func NewPage[T any](items []T, page, size int, totalItems int64) *Page[T] {
	_, totalPages := Clamp(page, totalItems, size)
	return &Page[T]{
		Items:      items,
		Number:     page,
		Size:       size,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
