// Package bounds provides the cubic and tetrahedral geometry primitives
// shared by every tree in the forest: axis-aligned bounding boxes, the
// tagged TreeBounds variant (CubicBounds | TetrahedralBounds), point
// containment, centroid, volume, and AABB-to-AABB intersection tests.
//
// Predicates never fail: NaN inputs produce false for containment and 0
// for volume rather than an error, matching the "geometry predicates never
// fail" rule of the adaptive forest's specification.
package bounds
