// Package match provides edit-distance helpers used to suggest the intended
// spelling of an unrecognized mapping directive value.
//
// Key functions:
//   - Levenshtein: computes edit distance between strings
//   - Similarity: normalized 0..1 score derived from the distance
//   - Suggest: ranks known values close to an unknown one
package match
