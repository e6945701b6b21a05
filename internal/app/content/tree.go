package content

import (
	"fmt"
	"sort"

	"github.com/oguzk/courseapi/internal/app/models"
)

// Node is a single member of a course tree. Children keep the
// authored sibling order.
type Node struct {
	Record   *models.CourseContent
	Parent   *Node
	Children []*Node
}

// ID returns the node's content identifier
func (n *Node) ID() string {
	return n.Record.ID
}

// Category returns the node's content category
func (n *Node) Category() string {
	return n.Record.Category
}

// IsRoot reports whether the node is the course node
func (n *Node) IsRoot() bool {
	return n.Parent == nil
}

// Tree is an arena of course content nodes indexed by content id,
// rooted at the course node.
type Tree struct {
	courseID string
	root     *Node
	index    map[string]*Node
}

// BuildTree assembles a tree from content rows. Row order does not
// matter; siblings are sorted by their authored position. Rows whose
// parent is not part of the set are rejected, as is a missing or
// duplicated root.
func BuildTree(courseID string, rows []*models.CourseContent) (*Tree, error) {
	t := &Tree{
		courseID: courseID,
		index:    make(map[string]*Node, len(rows)),
	}

	for _, row := range rows {
		if row.CourseID != courseID {
			return nil, fmt.Errorf("content %s belongs to course %s, not %s", row.ID, row.CourseID, courseID)
		}
		if _, exists := t.index[row.ID]; exists {
			return nil, fmt.Errorf("duplicate content id %s", row.ID)
		}
		t.index[row.ID] = &Node{Record: row}
	}

	for _, node := range t.index {
		if node.Record.ParentID == nil {
			if t.root != nil {
				return nil, fmt.Errorf("multiple root nodes: %s and %s", t.root.ID(), node.ID())
			}
			t.root = node
			continue
		}

		parent, ok := t.index[*node.Record.ParentID]
		if !ok {
			return nil, fmt.Errorf("content %s references unknown parent %s", node.ID(), *node.Record.ParentID)
		}
		node.Parent = parent
		parent.Children = append(parent.Children, node)
	}

	if t.root == nil {
		if len(rows) == 0 {
			return nil, fmt.Errorf("course %s has no content", courseID)
		}
		return nil, fmt.Errorf("course %s has no root node", courseID)
	}

	for _, node := range t.index {
		sort.SliceStable(node.Children, func(i, j int) bool {
			return node.Children[i].Record.Position < node.Children[j].Record.Position
		})
	}

	return t, nil
}

// CourseID returns the course the tree belongs to
func (t *Tree) CourseID() string {
	return t.courseID
}

// Root returns the course node
func (t *Tree) Root() *Node {
	return t.root
}

// Node looks up a node by content id. The second return value is
// false when the id is not part of this course.
func (t *Tree) Node(id string) (*Node, bool) {
	node, ok := t.index[id]
	return node, ok
}

// Children returns the immediate children of the given node, optionally
// filtered by category. An empty result is a valid empty slice.
func (t *Tree) Children(id string, category string) ([]*Node, bool) {
	node, ok := t.index[id]
	if !ok {
		return nil, false
	}

	children := make([]*Node, 0, len(node.Children))
	for _, child := range node.Children {
		if category != "" && child.Category() != category {
			continue
		}
		children = append(children, child)
	}
	return children, true
}

// Descendants returns every node below the given node in depth-first
// structural order.
func (t *Tree) Descendants(id string) ([]*Node, bool) {
	node, ok := t.index[id]
	if !ok {
		return nil, false
	}

	var out []*Node
	var walk func(n *Node)
	walk = func(n *Node) {
		for _, child := range n.Children {
			out = append(out, child)
			walk(child)
		}
	}
	walk(node)
	return out, true
}

// Len returns the number of nodes in the tree, the root included
func (t *Tree) Len() int {
	return len(t.index)
}
