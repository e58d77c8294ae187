package solver

import (
	"fmt"
	"strings"
)

// RenderMarkdown writes solution records as a Markdown report: the problem
// in a code block, its category, numbered steps with inline math and the
// answer in bold. Pure function of the records.
func RenderMarkdown(recs []Solution) string {
	var b strings.Builder
	for i, r := range recs {
		if i > 0 {
			b.WriteString("\n---\n\n")
		}
		fmt.Fprintf(&b, "## Problem %d\n\n", r.Number)
		fmt.Fprintf(&b, "```text\n%s\n```\n\n", r.Problem)
		fmt.Fprintf(&b, "**Category:** %s\n\n", r.Category)

		if len(r.Steps) > 0 {
			b.WriteString("**Steps:**\n\n")
			for j, st := range r.Steps {
				if st.Math != "" {
					fmt.Fprintf(&b, "%d. %s: `%s`\n", j+1, st.Description, st.Math)
				} else {
					fmt.Fprintf(&b, "%d. %s\n", j+1, st.Description)
				}
			}
			b.WriteString("\n")
		}

		fmt.Fprintf(&b, "**Answer:** %s\n", r.Answer)
		if r.Visualization != nil {
			fmt.Fprintf(&b, "\n**Graph:** `%s` (%s)\n", r.Visualization.Expression, r.Visualization.Note)
		}
		if r.Err != "" {
			fmt.Fprintf(&b, "\n_Could not be solved automatically: %s_\n", r.Err)
		}
	}
	return b.String()
}
