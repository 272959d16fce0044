// Package diagnostic records what the stripping pipeline and the module
// writer decided, entity by entity.
//
// Key capabilities:
//   - Info entries for every removal, repair and visibility change
//   - Warnings for repaired dangling references
//   - Errors for structural validation failures before a module is written
//   - Per-code counts for run summaries
package diagnostic
