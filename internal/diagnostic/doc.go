// Package diagnostic provides structured warnings and errors collected while
// checking mapping documents.
//
// Key capabilities:
//   - Error codes for every structural problem found in a document
//   - Origin and attribute path of the offending declaration
//   - "Did you mean" suggestions for misspelled selector values
package diagnostic
