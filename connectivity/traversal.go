package connectivity

import (
	"github.com/Hellblazer/Luciferase-sub010/ids"
)

// adjacency builds a per-tree neighbor-id index from the current
// connection table snapshot, reused by both FindConnectedComponents and
// FindShortestPath.
func (m *Manager) adjacency() map[ids.TreeId][]ids.TreeId {
	m.mu.RLock()
	defer m.mu.RUnlock()

	adj := make(map[ids.TreeId][]ids.TreeId, len(m.byTree))
	for id, keys := range m.byTree {
		neighbors := make([]ids.TreeId, 0, len(keys))
		for key := range keys {
			other := key.a
			if other == id {
				other = key.b
			}
			neighbors = append(neighbors, other)
		}
		adj[id] = neighbors
	}

	return adj
}

// FindConnectedComponents partitions every tree that appears in the
// connection table into its connected components via DFS.
func (m *Manager) FindConnectedComponents() [][]ids.TreeId {
	adj := m.adjacency()
	visited := make(map[ids.TreeId]bool, len(adj))

	var components [][]ids.TreeId
	for start := range adj {
		if visited[start] {
			continue
		}
		var component []ids.TreeId
		stack := []ids.TreeId{start}
		visited[start] = true
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			component = append(component, id)
			for _, next := range adj[id] {
				if !visited[next] {
					visited[next] = true
					stack = append(stack, next)
				}
			}
		}
		components = append(components, component)
	}

	return components
}

// FindShortestPath returns the sequence of tree ids from start to end
// (inclusive), or an empty slice if no path exists. Uses a breadth-first
// walk with a parent map for path reconstruction.
func (m *Manager) FindShortestPath(start, end ids.TreeId) []ids.TreeId {
	if start == end {
		return []ids.TreeId{start}
	}

	adj := m.adjacency()
	visited := map[ids.TreeId]bool{start: true}
	parent := map[ids.TreeId]ids.TreeId{}
	queue := []ids.TreeId{start}

	found := false
	for len(queue) > 0 && !found {
		id := queue[0]
		queue = queue[1:]
		for _, next := range adj[id] {
			if visited[next] {
				continue
			}
			visited[next] = true
			parent[next] = id
			if next == end {
				found = true

				break
			}
			queue = append(queue, next)
		}
	}
	if !found {
		return nil
	}

	// Reconstruct path by walking parent pointers back to start.
	path := []ids.TreeId{end}
	for cur := end; cur != start; {
		p := parent[cur]
		path = append(path, p)
		cur = p
	}
	// Reverse into start->end order.
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path
}
