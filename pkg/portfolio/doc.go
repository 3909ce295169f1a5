// Package portfolio partitions a name/address graph into connected
// components and answers aggregate queries about each one.
//
// # Partitioning
//
// [Partition] visits nodes in creation order and floods every unvisited node's
// component, so portfolios are numbered in discovery order and each node
// belongs to exactly one of them. Within a portfolio, nodes are kept in
// creation order; every ranking and document derives from that order.
//
// # Queries
//
//   - [Portfolio.Name]: "{best name}'s portfolio", where the best name is the
//     name node with the most registration-contact mentions. Computed once
//     during partitioning.
//   - [Portfolio.BuildingCount]: distinct registration ids on edges incident to
//     name nodes.
//   - [Portfolio.RankNames], [Portfolio.RankBizAddrs]: nodes sorted by
//     descending mentions, ties in portfolio order.
//   - [Portfolio.LocalBridges]: local bridges that do not merely attach a
//     degree-1 node.
//   - [Portfolio.Document]: the JSON structure consumed by the website.
//
// [Rank] orders portfolios by building count and [Summarize] computes the
// per-portfolio statistics in parallel.
package portfolio
