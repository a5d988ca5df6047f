package buffer

// Default page settings for the Paged variant.
const (
	DefaultPageSize   = 64 * 1024
	DefaultCachePages = 64
)

// Options describes a buffer to open.
type Options struct {
	// Kind selects the variant.
	Kind Kind

	// Path is the backing file for Mapped and Paged buffers.
	Path string

	// Capacity is the fixed size of the buffer in bytes.
	Capacity int

	// PageSize and CachePages configure Paged buffers. Zero means default.
	PageSize   int
	CachePages int
}

func (o Options) withDefaults() Options {
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	if o.CachePages <= 0 {
		o.CachePages = DefaultCachePages
	}
	return o
}

// PagedOption configures a Paged buffer.
type PagedOption func(*Paged)

// WithPageSize sets the size of a cached page in bytes.
func WithPageSize(size int) PagedOption {
	return func(p *Paged) {
		if size > 0 {
			p.pageSize = size
		}
	}
}

// WithCachePages sets how many pages may be resident at once.
func WithCachePages(n int) PagedOption {
	return func(p *Paged) {
		if n > 0 {
			p.maxPages = n
		}
	}
}
