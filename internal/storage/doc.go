// Package storage implements the JSON file contract between pipeline stages.
//
// Each stage reads its input file and overwrites its output file wholesale.
// Writes go to a temporary file that is renamed into place, so a reader sees
// either the previous file or the complete new one. Missing inputs read as
// empty payloads.
package storage
