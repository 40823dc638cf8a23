// Package manifest builds the per-arena image lookup table from normalized
// schedule rows.
package manifest
