// Package hepevt bridges events to and from the fixed-size HEPEVT record layout used by
// Fortran-era generators.
//
// A Block is a plain value owned by the caller, there is no process-wide common block. Indices
// are 1-based like in the Fortran layout, 0 stands for "no entry". Conversion goes through the
// public accessors and operations of package genevent only.
package hepevt
