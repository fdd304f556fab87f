// Package file provides the TOML configuration store.
//
// The file lives at ~/.foresight/config.toml unless another directory is
// given. Nested tables are flattened to dot keys on load and nested again
// on save, and Watch reloads the file whenever it changes on disk.
package file
