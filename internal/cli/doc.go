// Package cli implements the vb-schedule command-line interface.
//
// Each pipeline stage is its own subcommand (scrape, normalize, manifest,
// ics) and reads its input from, and writes its output to, the data
// directory. The run command executes scrape, normalize and manifest in
// sequence, still handing data between stages through the files.
package cli
