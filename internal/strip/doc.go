// Package strip reduces a module graph to its public surface.
//
// The pipeline runs once over a graph obtained from a reader:
//  1. For each top-level type in order: accessor normalization, member
//     filtering (recursing into nested types), removal marking, and attribute
//     sanitizing of the type and its fields.
//  2. Marked types are excised from the top-level sequence, and signature
//     references to them are retyped to the placeholder object type.
//  3. A final sweep clears unresolved attribute usages on every surviving
//     type, property and field.
//
// The result is handed to a writer. Interfaces are exempt from member-level
// filtering but still lose their place when their name is synthetic.
//
// # Ordering contract
//
// Accessor normalization runs before method removal on the same type. Both
// read and write method flags; keeping the order fixed means any future
// pre-removal check sees the graph exactly as loaded.
//
// # Snapshot-then-filter
//
// No pass removes from a collection it is ranging over. Candidates are
// collected into a side list and the owning collection is rebuilt without them.
package strip
