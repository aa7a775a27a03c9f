package outline

import "github.com/regdocs/sheetchunk/internal/record"

// AssignOptions controls which rows are emitted with paths.
type AssignOptions struct {
	// EmitHeadings also emits heading rows that carry no body content,
	// as zero-content records. Synthesized placeholders are never
	// emitted: they have no source row.
	EmitHeadings bool
}

// Assign walks the outline pre-order and emits every content-bearing
// row with its semantic path: the titles of all ancestors from
// root-child to immediate parent, placeholder titles included verbatim.
// A node's own content is emitted before its sub-headings, so the
// output preserves global document order.
func Assign(root *Node, opts AssignOptions) []record.PathRecord {
	var out []record.PathRecord
	walk(root, nil, opts, &out)
	return out
}

func walk(n *Node, breadcrumb []string, opts AssignOptions, out *[]record.PathRecord) {
	if n.Level > RootLevel {
		if n.Heading != nil {
			if n.Heading.Content != "" {
				// A heading that carries body text is content under itself.
				*out = append(*out, record.PathRecord{
					Row:          *n.Heading,
					SemanticPath: appendTitle(breadcrumb, n.Title),
				})
			} else if opts.EmitHeadings {
				*out = append(*out, record.PathRecord{
					Row:          *n.Heading,
					SemanticPath: copyPath(breadcrumb),
				})
			}
		}
		breadcrumb = appendTitle(breadcrumb, n.Title)
	}

	for _, row := range n.Content {
		*out = append(*out, record.PathRecord{
			Row:          row,
			SemanticPath: copyPath(breadcrumb),
		})
	}

	for _, child := range n.Children {
		walk(child, breadcrumb, opts, out)
	}
}

// appendTitle returns a fresh slice so sibling subtrees never share
// breadcrumb backing arrays.
func appendTitle(breadcrumb []string, title string) []string {
	bc := make([]string, 0, len(breadcrumb)+1)
	bc = append(bc, breadcrumb...)
	return append(bc, title)
}

func copyPath(breadcrumb []string) []string {
	if len(breadcrumb) == 0 {
		return []string{}
	}
	out := make([]string, len(breadcrumb))
	copy(out, breadcrumb)
	return out
}
