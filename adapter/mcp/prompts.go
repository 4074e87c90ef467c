package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/mcp-go"
)

// RegisterPrompts registers MCP prompts for the planner workflows.
func RegisterPrompts(srv *mcp.Server, deps ToolDependencies) error {
	if srv == nil {
		return fmt.Errorf("server is required")
	}

	srv.Prompt("plan_my_day").
		Description("Set today's time and energy, then walk through the next step and the rest of the timeline.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("Plan My Day", planMyDayText(args["energy"])), nil
		})

	srv.Prompt("end_of_day").
		Description("Review what got done today and check off habits before sleep.").
		Handler(func(ctx context.Context, args map[string]string) (*mcp.PromptResult, error) {
			return userPrompt("End Of Day", `Let's close out today.

1. Read dayplan://tasks and tell me which tasks are still open
2. Read dayplan://habits and ask me about each unchecked habit
3. Use planner.done and planner.habit to record what I confirm

Keep it short. If an open task can wait for tomorrow, say so instead of squeezing it in after 22:30.`), nil
		})

	return nil
}

func planMyDayText(energy string) string {
	energy = strings.TrimSpace(energy)
	if energy == "" {
		energy = "ask me how I feel (low, medium or high)"
	}

	return fmt.Sprintf(`Help me plan the rest of my day.

1. Call planner.update with time "now" and energy: %s
2. Call planner.plan and show me the next step with its tips
3. Summarise the timeline in a few lines, keeping the 22:30 cutoff
4. If my energy is low, point out the lighter option

When I finish something, record it with planner.done.`, energy)
}

func userPrompt(description, text string) *mcp.PromptResult {
	return &mcp.PromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role: string(mcp.RoleUser),
				Content: mcp.TextContent{
					Type: "text",
					Text: text,
				},
			},
		},
	}
}
