// Package graph maps parsed JSON content files onto linked content nodes.
//
// Challenges, lessons and guest tutorials share one mapper that also links
// community contributions stored in a sibling contributions directory.
// Tracks have their own mapper producing a Track node and, for main tracks,
// one Chapter node per chapter. Identifiers come from an injected
// IDSynthesizer keyed on stable path-like strings, so nodes created from
// different files reference each other without a shared lookup table.
package graph
