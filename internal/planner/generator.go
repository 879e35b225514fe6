package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"veg-meal-planner/internal/llm"
)

// Generator asks the LLM for a month of vegetarian meal entries.
type Generator struct {
	textGen llm.TextGenerator
	now     func() time.Time
}

// NewGenerator creates a new Generator instance.
func NewGenerator(textGen llm.TextGenerator) *Generator {
	return &Generator{textGen: textGen, now: time.Now}
}

// Generate builds the monthly-plan prompt for the given preferences, submits
// it, and returns the cleaned raw CSV text. Empty preferences are rejected
// before any external call. The output is not validated; the parser is
// expected to tolerate whatever comes back.
func (g *Generator) Generate(ctx context.Context, preferences string) (string, error) {
	preferences = strings.TrimSpace(preferences)
	if preferences == "" {
		return "", fmt.Errorf("preferences must not be empty")
	}

	prompt := g.buildPrompt(preferences)

	raw, err := g.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("failed to generate meal plan: %w", err)
	}

	return StripCodeFences(raw), nil
}

func (g *Generator) buildPrompt(preferences string) string {
	now := g.now()
	monthName := now.Month().String()
	daysInMonth := time.Date(now.Year(), now.Month()+1, 0, 0, 0, 0, 0, now.Location()).Day()
	firstDay := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	return fmt.Sprintf(`You are a vegetarian meal planner. Create a full meal plan for every day of %s %d (%d days, starting %s).

User preferences: "%s"

Instructions:
1. For each day produce one breakfast, one lunch and one dinner entry, all vegetarian.
2. Keep dishes simple and home-cookable; "method" is a one-line cooking summary.
3. "prep" lists anything to prepare the evening before (soaking, batter, chopping); leave it empty when there is nothing to prepare.
4. Return CSV only, with exactly this header and one row per entry:
date,meal_type,item,method,prep,quantity
5. Dates use the YYYY-MM-DD format. meal_type is one of breakfast, lunch, dinner.

Do not include any other text or formatting in your response.`,
		monthName, now.Year(), daysInMonth, firstDay.Format(DateLayout), preferences)
}

// StripCodeFences removes a wrapping Markdown code fence (``` or ```csv)
// from generated output, returning the exact body.
func StripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// Drop a language tag like "csv" on the opening fence line.
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	} else {
		return strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
