// Package dot renders portfolios as Graphviz DOT and SVG.
//
// # DOT Format
//
// [ToDOT] produces an undirected graph preceded by a comment line carrying the
// portfolio title:
//
//	// JANE DOE's portfolio
//
//	graph {
//	    0 [ label="JANE DOE", color=whitesmoke, style=filled ]
//	    1 [ label="1 MAIN ST , NEW YORK NY", color=lightblue2, style=filled, shape=box ]
//	    0 -- 1 [ label="2" ]
//	}
//
// Name nodes are filled whitesmoke, business addresses are light-blue boxes,
// and each edge is labeled with its mention count. With [Options.Bridges]
// set, local bridges are drawn thick and red.
//
// # SVG
//
// [RenderSVG] lays the DOT source out in-process with
// [github.com/goccy/go-graphviz]; no Graphviz installation is needed.
package dot
