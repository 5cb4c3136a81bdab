package requests

type Pagination struct {
	Page     int
	PageSize int
}

// Offset is the zero-based row offset for the requested page.
func (p *Pagination) Offset() int {
	if p == nil || p.Page <= 1 {
		return 0
	}
	return (p.Page - 1) * p.PageSize
}
