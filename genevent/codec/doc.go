// Package codec converts events into plain serializable data and back.
//
// EventData holds the live graph of one version: particles in barcode order and vertices that
// refer to particles by index. WriteData snapshots an event, ReadData rebuilds a fresh event
// exclusively through the public Event and Vertex operations, so every graph invariant is
// checked again on the way in. Encode and Decode render EventData as JSON, BuildRecord wraps an
// encoded event into a Record ready to be archived.
package codec
