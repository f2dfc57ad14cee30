package commons

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Pageable is a zero-based page request. Normalize clamps it to sane
// bounds before it reaches a repository.
type Pageable struct {
	Page int
	Size int
}

func (p Pageable) Normalize() Pageable {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}
