// Package domain defines the core business entities for pageindex.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - PageDocument: A structured page with a layout of rows and widgets
//   - IndexedPage: The flattened, searchable record kept per page
//   - SearchResult: A scored hit with its title/content matches
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
