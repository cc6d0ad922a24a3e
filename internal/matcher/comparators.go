package matcher

import "github.com/aescanero/dago-matcher/internal/eval/compare"

// Number returns a Comparator accepting numbers within opts.
// It panics if opts are inconsistent, e.g. Min greater than Max.
func Number(opts compare.NumberOptions) Comparator {
	return compare.MustNumber(opts)
}

// String returns a Comparator accepting strings within opts.
// It panics if opts are inconsistent or Pattern does not compile.
func String(opts compare.StringOptions) Comparator {
	return compare.MustString(opts)
}
