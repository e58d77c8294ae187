package solver

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderMarkdown(t *testing.T) {
	recs := []Solution{
		{
			Number:   1,
			Problem:  "Solve 2x + 3 = 7 for x",
			Category: "Algebra",
			Steps: []Step{
				{Description: "Collect terms", Math: "2x = 4"},
				{Description: "Divide both sides"},
			},
			Answer: "x = 2",
		},
		{
			Number:   2,
			Problem:  "Graph y = 2x + 1",
			Category: "Graphing",
			Answer:   "a line with slope 2 and y-intercept 1",
			Visualization: &Visualization{
				Kind:       "graph",
				Expression: "y = 2x + 1",
				Note:       "a line with slope 2 and y-intercept 1",
			},
		},
		{
			Number:   3,
			Problem:  "???",
			Category: GeneralCategory,
			Answer:   "This problem requires manual analysis.",
			Err:      "no solving path matched \"???\"",
		},
	}

	md := RenderMarkdown(recs)

	assert.Contains(t, md, "## Problem 1\n\n```text\nSolve 2x + 3 = 7 for x\n```")
	assert.Contains(t, md, "**Category:** Algebra")
	assert.Contains(t, md, "**Steps:**\n\n1. Collect terms: `2x = 4`\n2. Divide both sides\n")
	assert.Contains(t, md, "**Answer:** x = 2")

	assert.Contains(t, md, "## Problem 2")
	assert.Contains(t, md, "**Graph:** `y = 2x + 1` (a line with slope 2 and y-intercept 1)")

	assert.Contains(t, md, "## Problem 3")
	assert.Contains(t, md, "_Could not be solved automatically: no solving path matched \"???\"_")

	// Records are separated by horizontal rules, one fewer than records.
	assert.Equal(t, 2, strings.Count(md, "\n---\n"))
}

func TestRenderMarkdownEmpty(t *testing.T) {
	assert.Equal(t, "", RenderMarkdown(nil))
}

func TestRenderMarkdownEndToEnd(t *testing.T) {
	recs := Solve(context.Background(), "1. Solve 2x + 3 = 7 for x\n2. Find the area of a circle with radius 5")
	md := RenderMarkdown(recs)
	require.NotEmpty(t, md)
	assert.Contains(t, md, "## Problem 1")
	assert.Contains(t, md, "**Answer:** x = 2")
	assert.Contains(t, md, "## Problem 2")
	assert.Contains(t, md, "**Answer:** A = 78.53981634")
}
