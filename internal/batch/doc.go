// Package batch applies the metadata writer to many files: discovery,
// per-file timestamp selection, bounded concurrent execution over distinct
// paths, failure reporting and a tag report for the show command.
package batch
