// SPDX-License-Identifier: MIT

package matrix

// DefaultValidateNaNInf is the numeric policy of a new Dense: Set, Apply and
// NewDenseFrom reject NaN and ±Inf.
const DefaultValidateNaNInf = true

// Option configures a Dense at construction.
type Option func(*Options)

// Options is the resolved construction state. The policy is fixed for the
// lifetime of the matrix.
type Options struct {
	validateNaNInf bool
}

// WithValidateNaNInf turns the finite-value policy on (the default).
func WithValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = true }
}

// WithNoValidateNaNInf turns the finite-value policy off, so non-finite
// values can be stored.
func WithNoValidateNaNInf() Option {
	return func(o *Options) { o.validateNaNInf = false }
}

// gatherOptions applies opts over the defaults; the last setter wins.
func gatherOptions(opts ...Option) Options {
	o := Options{validateNaNInf: DefaultValidateNaNInf}
	for _, set := range opts {
		set(&o)
	}

	return o
}
