// Package outline reconstructs a document hierarchy from a flat,
// order-preserving row stream and annotates content with its
// breadcrumb path through that hierarchy.
package outline

import (
	"fmt"

	"github.com/regdocs/sheetchunk/internal/record"
)

// RootLevel is the level of the synthetic root node.
const RootLevel = -1

// PlaceholderTitle is the title given to nodes synthesized for skipped
// heading levels, and to explicit heading rows with an empty title.
func PlaceholderTitle(level int) string {
	return fmt.Sprintf("<untitled level %d>", level)
}

// Node is one reconstructed outline element. The tree is acyclic and
// rooted in a synthetic node at RootLevel; nodes hold no parent pointers.
type Node struct {
	Title string
	Level int

	// Heading is the source row that opened this node. It is nil for the
	// root and for synthesized placeholder nodes.
	Heading *record.Row

	Children []*Node

	// Content holds the rows attached directly under this node, in
	// original sequence order, before any sub-heading.
	Content []record.Row
}

// Build reconstructs the outline from rows in sequence order using a
// stack of currently open nodes. Skipped heading levels (e.g. 1 -> 3)
// are bridged with placeholder nodes so no content row is ever dropped
// for lack of a parent.
func Build(rows []record.Row) (*Node, error) {
	root := &Node{Level: RootLevel}
	stack := []*Node{root}

	prevSeq := 0
	for i, row := range rows {
		if i > 0 && row.Seq <= prevSeq {
			return nil, &record.MalformedInputError{
				Seq:    row.Seq,
				Reason: fmt.Sprintf("sequence index not strictly increasing (previous %d)", prevSeq),
			}
		}
		prevSeq = row.Seq

		if row.Level < record.LevelContent {
			return nil, &record.MalformedInputError{
				Seq:    row.Seq,
				Reason: fmt.Sprintf("level %d is neither a heading level nor the content sentinel", row.Level),
			}
		}

		if !row.IsHeading() {
			top := stack[len(stack)-1]
			top.Content = append(top.Content, row)
			continue
		}

		// Close open nodes at the same or deeper level.
		for len(stack) > 1 && stack[len(stack)-1].Level >= row.Level {
			stack = stack[:len(stack)-1]
		}

		// Bridge skipped levels with placeholders. The root accepts a
		// heading of any level directly: gaps are only meaningful
		// between real headings.
		if len(stack) > 1 {
			for stack[len(stack)-1].Level < row.Level-1 {
				parent := stack[len(stack)-1]
				ph := &Node{
					Title: PlaceholderTitle(parent.Level + 1),
					Level: parent.Level + 1,
				}
				parent.Children = append(parent.Children, ph)
				stack = append(stack, ph)
			}
		}

		title := row.Title
		if title == "" {
			// An explicit but untitled heading acts as its own placeholder.
			title = PlaceholderTitle(row.Level)
		}

		r := row
		node := &Node{Title: title, Level: row.Level, Heading: &r}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, node)
		stack = append(stack, node)
	}

	return root, nil
}
