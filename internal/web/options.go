package web

import "github.com/bornholm/masthead/internal/header"

const (
	RouteToken  = "/auth/token"
	RouteHealth = "/healthz"
)

type Options struct {
	Brand string
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Brand: header.DefaultBrand,
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
