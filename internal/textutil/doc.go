// Package textutil provides text processing utilities for title cleanup,
// fuzzy-comparison keys, and filename sanitization.
//
// The primary use cases are:
//   - Stripping region/revision annotations from filename-derived titles
//   - Producing a canonical comparison key so two spellings of the same
//     game title compare equal
//   - Sanitizing display titles for safe filesystem use
//
// Comparison keys are lowercase, single-spaced alphanumeric token runs with
// "&" folded to "and" and a lone trailing possessive "s" dropped. They are
// used only for equality checks and never persisted.
package textutil
