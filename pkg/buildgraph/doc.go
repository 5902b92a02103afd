// Package buildgraph implements the target graph at the core of daedalus.
// Targets are declared once through a Builder and turned into an immutable
// Graph for one concrete build configuration. During that step conditional
// targets are included or dropped based on their condition, every dependency
// edge is resolved against the included subset and cycles are rejected.
// External orchestrators consume the result either through the Graph queries
// or the JSON snapshot.
package buildgraph
