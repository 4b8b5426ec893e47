// Package internalcheck provides internal validation and testing utilities.
//
// This package contains policy tests used internally by the mpcio-go library
// to keep share-handling code free of patterns that leak secret material.
// It is not intended for external use and the API may change without notice.
//
// # Internal Use Only
//
// This package is part of the internal implementation and should not be
// imported by applications using the mpcio library. Use the public API
// provided by pkg/mpcio and its subpackages instead.
package internalcheck
