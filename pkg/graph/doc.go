// Package graph provides the undirected name/address graph that links
// reported owners and officers to the business addresses they declare.
//
// # Overview
//
// A [Graph] has two node kinds, [KindName] and [KindBizAddr]. Nodes are
// keyed by (kind, label): adding the same label twice under one kind is an
// error, so callers intern through [Builder]. Labels live in a string arena
// indexed by integer id; nodes store the arena index, not the string.
//
// Edges are undirected and unique per unordered node pair. Each edge carries
// the ordered list of registration-contact references ([Ref]) that produced
// it: feeding the same (name, address) pair twice appends a second reference
// to one edge rather than creating a parallel edge.
//
// # Determinism
//
// [NodeID] and [EdgeID] values are dense and assigned in insertion order.
// Neighbor lists preserve the order in which edges were added. Nothing in
// this package iterates a map to produce output, so identical input rows
// always yield identical ids.
//
// # Building a Graph
//
//	b := graph.NewBuilder()
//	b.Add("JANE DOE", "1 MAIN ST , NEW YORK NY", graph.Ref{RegistrationID: 7, ContactID: 70})
//	g := b.Graph()
//
//	id, ok := g.FindName("JANE")  // exact match, then first substring match
//	g.Mentions(id)                // total references on incident edges
//
// The graph is built once and read-only afterwards. Read methods are safe for
// concurrent use once building has finished.
package graph
