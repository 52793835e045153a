// Package main hosts the readorder CLI entrypoint and command graph.
//
// The Cobra command tree loads configuration once, applies flag overrides,
// and hands files or directories to the library and the internal batch
// runner. Output goes to stdout; logs go to stderr.
package main
