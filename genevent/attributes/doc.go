// Package attributes provides the standard event attributes (PDF info, heavy-ion collision data,
// cross section and named weights) and a Registry that recreates them from their type names
// when events are decoded.
//
// Every variant implements genevent.Attribute and marshals itself as JSON.
package attributes
