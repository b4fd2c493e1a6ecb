// Package match provides identifier normalization, Levenshtein distance and
// "did you mean" suggestions for misspelled directive, record and field names.
//
// Key functions:
//   - NormalizeIdent: folds case and separators so "strip_option" and
//     "stripOption" compare equal
//   - Levenshtein: computes edit distance between strings
//   - Suggest: ranks known names against an unknown one
package match
