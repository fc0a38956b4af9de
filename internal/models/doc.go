// Package models defines the canonical domain records for the plx playlist client.
//
// The catalog and persistence services have shipped several wire shapes for a
// song over time (flat strings, nested artist/album objects, nested objects
// plus image/stream/timestamp fields). Everything past the service clients
// works on the canonical [Song] with optional fields; normalization of the
// external shapes happens once, at the client boundary in internal/services.
//
// A playlist stores denormalized copies of catalog fields captured at
// add-time, not references, so later catalog edits never rewrite what a
// playlist displays.
package models
