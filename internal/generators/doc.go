// Package generators provides the built-in action generators. Each owns one
// business domain (sales, marketing, strategic, operations) and maps a single
// insight to concrete, owned actions from fixed templates.
package generators
