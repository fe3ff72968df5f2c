package forestapi

import (
	"github.com/Hellblazer/Luciferase-sub010/forest"
	"github.com/Hellblazer/Luciferase-sub010/ids"
)

// Ancestors returns id's parent, grandparent, and so on up to the root,
// nearest first.
func (af *AdaptiveForest) Ancestors(id ids.TreeId) []*forest.TreeNode {
	var out []*forest.TreeNode

	node, ok := af.Forest.GetTree(id)
	if !ok {
		return out
	}
	for {
		parentID, hasParent := node.ParentTreeID()
		if !hasParent {
			return out
		}
		parent, ok := af.Forest.GetTree(parentID)
		if !ok {
			return out
		}
		out = append(out, parent)
		node = parent
	}
}

// Descendants returns every tree reachable from id's children,
// breadth-first, excluding id itself.
func (af *AdaptiveForest) Descendants(id ids.TreeId) []*forest.TreeNode {
	var out []*forest.TreeNode

	queue := []ids.TreeId{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		node, ok := af.Forest.GetTree(cur)
		if !ok {
			continue
		}
		for _, childID := range node.ChildTreeIDs() {
			if child, ok := af.Forest.GetTree(childID); ok {
				out = append(out, child)
				queue = append(queue, childID)
			}
		}
	}

	return out
}

// Subtree returns id's node together with all of its descendants,
// root-first.
func (af *AdaptiveForest) Subtree(id ids.TreeId) []*forest.TreeNode {
	node, ok := af.Forest.GetTree(id)
	if !ok {
		return nil
	}

	return append([]*forest.TreeNode{node}, af.Descendants(id)...)
}

// Leaves returns every tree in the forest with no children.
func (af *AdaptiveForest) Leaves() []*forest.TreeNode {
	var out []*forest.TreeNode
	for _, node := range af.Forest.AllTrees() {
		if node.IsLeaf() {
			out = append(out, node)
		}
	}

	return out
}

// TreesAtLevel returns every tree whose hierarchyLevel equals level.
// AllTrees is already id-sorted, so the filtered result is too.
func (af *AdaptiveForest) TreesAtLevel(level uint32) []*forest.TreeNode {
	var out []*forest.TreeNode
	for _, node := range af.Forest.AllTrees() {
		if node.HierarchyLevel() == level {
			out = append(out, node)
		}
	}

	return out
}
