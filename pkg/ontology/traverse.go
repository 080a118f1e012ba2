package ontology

// TraversalNode is one visited entity in a traversal result, annotated with
// the depth at which it was first reached.
type TraversalNode struct {
	// Entity is a copy of the visited entity.
	Entity *Entity

	// Depth is the number of directed hops from the start entity.
	Depth int
}

// Traverse performs a breadth-first walk of the entity graph starting at
// startID (depth 0). At each visited entity with depth d < maxDepth it
// follows every outgoing relationship edge to reach depth d+1 entities.
//
// Each entity id is visited at most once; the first depth at which it is
// reached wins, so cycles and diamonds neither loop nor re-visit. Edge
// targets that reference unstored entities are skipped. Inverse
// relationships are not followed: only the entity's own relationship map,
// which the ingestion layer populates in both directions when bidirectional
// reachability is wanted.
//
// The result maps entity id to its traversal node, including the start
// entity at depth 0. An unknown startID yields an empty map.
func (e *Engine) Traverse(startID string, maxDepth int) map[string]TraversalNode {
	e.mu.RLock()
	defer e.mu.RUnlock()

	visited := make(map[string]TraversalNode)
	defer func() { e.metrics.RecordTraversal(len(visited)) }()

	start, ok := e.entities[startID]
	if !ok {
		return visited
	}
	if maxDepth < 0 {
		maxDepth = 0
	}

	type frame struct {
		entity *Entity
		depth  int
	}

	queue := []frame{{entity: start, depth: 0}}
	visited[startID] = TraversalNode{Entity: start.Clone(), Depth: 0}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current.depth >= maxDepth {
			continue
		}

		for _, targets := range current.entity.Relationships {
			for _, targetID := range targets {
				if _, seen := visited[targetID]; seen {
					continue
				}
				target, ok := e.entities[targetID]
				if !ok {
					continue
				}
				visited[targetID] = TraversalNode{Entity: target.Clone(), Depth: current.depth + 1}
				queue = append(queue, frame{entity: target, depth: current.depth + 1})
			}
		}
	}

	return visited
}
