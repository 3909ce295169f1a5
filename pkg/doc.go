// Package pkg provides the core libraries for hpdgraph.
//
// # Overview
//
// hpdgraph treats NYC HPD registration contacts as evidence of common
// control: a person and a business address that appear on the same contact
// row are linked, and every connected group of names and addresses is one
// landlord portfolio.
//
// # Architecture
//
// The typical data flow:
//
//	Multiple_Dwelling_Registrations.csv     Registration_Contacts.csv
//	         ↓                                        ↓
//	    [hpd] validity index  ───────────→  [hpd] record filter
//	                                                  ↓
//	                                        [graph] name/address graph
//	                                                  ↓
//	                                        [portfolio] partition, ranking
//	                                                  ↓
//	              text reports, DOT/SVG, JSON documents, static site, HTTP API
//
// # Quick Start
//
//	import (
//	    "context"
//	    "github.com/matzehuels/hpdgraph/pkg/pipeline"
//	    "github.com/matzehuels/hpdgraph/pkg/portfolio"
//	)
//
//	res, err := pipeline.NewRunner(nil).Load(context.Background(), pipeline.Options{})
//	if err != nil {
//	    return err
//	}
//	for i, e := range portfolio.Rank(res.Portfolios, 10) {
//	    fmt.Printf("%d. %s - %d buildings\n", i+1, e.Portfolio.Name(), e.Buildings)
//	}
//
// # Main Packages
//
// ## Datasets
//
// [bbl] - Borough/Block/Lot parcel identifiers.
//
// [hpd] - Readers for the registrations and contacts tables, the record
// filter that decides which contacts become edges, and the synonym table
// that merges known aliases.
//
// [httputil] - Dataset download from NYC Open Data with retries.
//
// ## Graph
//
// [graph] - Undirected name/address graph with interned labels. The
// [graph.Builder] deduplicates nodes and edges while the contacts stream in.
//
// [graph/bridge] - Local bridge detection within one portfolio.
//
// [graph/path] - Shortest paths and the longest-path report.
//
// [portfolio] - Connected components, best names, building counts, ranking,
// and the structured document used by the JSON export and the website.
//
// ## Output
//
// [render/dot] - Graphviz DOT text and in-process SVG rendering, with an
// optional render cache from [cache].
//
// [site] - Static website export.
//
// [api] - Read-only HTTP API.
//
// ## Infrastructure
//
// [pipeline] - Options and the Runner shared by the CLI, website export and
// HTTP server. Ensures consistent behavior across all entry points.
//
// [observability] - Hooks for load, build and HTTP events with a Prometheus
// implementation.
//
// [errors] - Coded errors distinguishing corrupt datasets from lookup misses.
//
// # Testing
//
// Run tests:
//
//	go test ./...                  # All tests
//	go test ./pkg/portfolio/...    # Specific package
//	go test -run Example ./pkg/... # Examples only
package pkg
