// Package shared holds utilities used across packages that belong to no
// specific domain or architectural layer.
//
// # Structure
//
//   - testutil: testing helpers, currently the buffered slog handler that
//     lets tests assert on what a component logged
//
// # Usage Guidelines
//
// This package should only contain:
//
//  1. Test utilities used by multiple packages
//  2. Generic helpers with no domain-specific logic
//
// It should NOT contain:
//
//  1. Business logic (record repair, extraction, classification)
//  2. Dependencies on other internal packages
package shared
