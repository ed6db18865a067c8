// Package thread builds the two-level reply tree for the post detail page.
// The structure is recomputed from scratch on every load; there is no
// incremental update path.
package thread

import "github.com/pacifora/sahabat-ktb/backend/internal/models"

// Node pairs a top-level reply with its children in creation order.
type Node struct {
	Reply    models.Reply   `json:"reply"`
	Children []models.Reply `json:"children"`
}

// Build groups a flat reply list, ordered by creation time ascending, into
// (top-level, children) pairs. Children keep their original order. A reply
// whose parent id references a missing reply, or a reply that is itself a
// child, is an orphan and is dropped without error.
func Build(replies []models.Reply) []Node {
	topLevel := make(map[uint]int) // reply id -> index in nodes
	var nodes []Node

	for _, r := range replies {
		if r.TopLevel() {
			topLevel[r.ID] = len(nodes)
			nodes = append(nodes, Node{Reply: r})
		}
	}

	for _, r := range replies {
		if r.TopLevel() {
			continue
		}
		idx, ok := topLevel[*r.ParentReplyID]
		if !ok {
			continue // orphan
		}
		nodes[idx].Children = append(nodes[idx].Children, r)
	}

	return nodes
}

// Count returns the total number of replies rendered from the tree,
// top-level and nested.
func Count(nodes []Node) int {
	total := 0
	for _, n := range nodes {
		total += 1 + len(n.Children)
	}
	return total
}
