// Package probe reads container metadata back with a single ffprobe JSON
// call. It is the verification side of a rewrite: the creation_time tag and
// a stream summary that must be identical before and after a stream copy.
package probe
