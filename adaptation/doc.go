// Package adaptation implements the forest's density-driven subdivision
// and merge engine: a background scheduler that samples every tree's
// density region on a fixed cadence, an urgent-trigger path for mutation
// hooks that cannot wait for the next cycle, and the seven subdivision
// strategies (OCTANT, BINARY_X/Y/Z, ADAPTIVE, K_MEANS, TETRAHEDRAL) that
// decide child geometry.
//
// Strategies are pure functions of a tree's bounds and entity positions;
// the Engine supplies the stateful parts — the CAS subdivision gate,
// child-tree construction via spatialtree.Factory, entity redistribution,
// and event emission.
package adaptation
