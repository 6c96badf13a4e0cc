package header

type Options struct {
	Brand    string
	MenuOpen bool
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Brand:    DefaultBrand,
		MenuOpen: false,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithBrand(brand string) OptionFunc {
	return func(opts *Options) {
		if brand == "" {
			return
		}
		opts.Brand = brand
	}
}

// WithMenuOpen restores the menu visibility of a mount whose interaction
// spans several requests.
func WithMenuOpen(open bool) OptionFunc {
	return func(opts *Options) {
		opts.MenuOpen = open
	}
}
