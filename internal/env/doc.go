// Package env reads and rewrites persistent environment variables.
//
// A [Store] hides where variables live: the registry on Windows, a YAML
// file elsewhere, memory in tests and dry runs. [Resolver] expands
// %NAME% references on top of a store, and [Reconcile] keeps exactly one
// %HOME%\bin entry at the front of PATH.
package env
