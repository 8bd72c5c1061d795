// Package printer renders events, particles, vertices and attributes as human-readable text
// and events as a YAML dump.
//
// The printer only reads through the accessors of package genevent.
package printer
