// Package connectivity classifies and stores the spatial adjacency graph
// between trees: face/edge/vertex/overlap/disjoint connections, BFS
// shortest paths, and DFS connected components.
package connectivity
