package kdtree

// DefaultLeafCapacity is the number of points a leaf holds before it is split.
const DefaultLeafCapacity = 2

// Option configures a Tree during creation.
type Option func(*options)

type options struct {
	leafCapacity int
}

func defaultOptions() options {
	return options{
		leafCapacity: DefaultLeafCapacity,
	}
}

// WithLeafCapacity sets the number of points a leaf may hold before it is
// split. Values smaller than 1 are ignored.
func WithLeafCapacity(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.leafCapacity = n
		}
	}
}
