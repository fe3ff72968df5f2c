// Package entitymgr implements the entity manager façade: the single entry
// point mutation operations go through — insert, remove, update position —
// fanning each one out to the chosen tree's spatialtree.SpatialTree, the
// density tracker, and the ghost manager.
//
// Tree choice and migration policy are pluggable via AssignmentStrategy;
// two reference strategies (RoundRobin, SpatialBounds) are provided.
package entitymgr
