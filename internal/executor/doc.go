// Package executor implements the resolution engine: it walks a parsed and
// validated query document breadth-first, resolves each selected field
// through the injected Runtime, and assembles a response tree congruent to
// the request.
//
// Execution proceeds depth by depth. Source-projection fields resolve
// synchronously and expand their sub-selections immediately. Every other
// field suspends: it is recorded as a pending resolution and the engine
// moves on to its siblings. When the whole depth has been expanded the
// engine closes the batch window with a single Runtime.BatchResolve call
// carrying every pending field, which is what lets the runtime collapse N
// sibling lookups of the same entity type into one multi-key store fetch.
// Completion of those results seeds the next depth.
//
// Errors are collected as located GraphQL errors (message plus response
// path). A failing field becomes null at its own path; siblings and
// unrelated branches keep resolving. A null in a Non-Null position
// propagates to the nearest nullable ancestor, and pending work underneath a
// nullified path is dropped before the next batch fires.
//
// List completion preserves the positional order of the resolved list
// regardless of the order batch results arrive in, and sibling fields appear
// in the response in the order the query requested them.
package executor
