// Package synthesizers provides the built-in insight synthesizers, one per
// insight category. Each maps ranked patterns to business-framed insights
// and never consults the others.
package synthesizers
