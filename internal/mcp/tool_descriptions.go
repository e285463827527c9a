package mcp

import "strings"

// ToolDescription provides enhanced descriptions for AI agents
type ToolDescription struct {
	Description string
	WhenToUse   []string
	Examples    []string
	NextTools   []string
}

var toolDescriptions = map[string]ToolDescription{
	"label_generate": {
		Description: "Allocate a batch of sequential QR label texts. The trailing number of the base article is the start; if that number was already issued for the prefix, numbering continues after the last issued one. The allocation is saved",
		WhenToUse: []string{
			"When asked to print or create new labels for an article",
			"When new unique article numbers are needed",
		},
		Examples: []string{
			`label_generate(base: "SKU0042", count: 10)`,
			`label_generate(base: "BOX-01-red", count: 3)`,
		},
		NextTools: []string{
			"label_peek - Check where the next batch will start",
		},
	},

	"label_expand": {
		Description: "Expand a base article into sequential label texts without allocating anything. Use it to preview or to reprint an existing batch",
		WhenToUse: []string{
			"When reprinting labels that were already issued",
			"When previewing what a batch would look like",
		},
		Examples: []string{
			`label_expand(base: "A08", count: 3)`,
		},
		NextTools: []string{
			"label_generate - Allocate the batch for real",
		},
	},

	"label_peek": {
		Description: "Report the next free number for an article prefix without changing anything",
		WhenToUse: []string{
			"Before generating labels, to pick a base article",
			"When asked 'what is the next number for X?'",
		},
		Examples: []string{
			`label_peek(article: "SKU")`,
			`label_peek(article: "SKU007")`,
		},
		NextTools: []string{
			"label_generate - Allocate labels starting at the reported number",
		},
	},
}

// GetEnhancedDescription returns the enhanced description for a tool
func GetEnhancedDescription(toolName string) string {
	desc, ok := toolDescriptions[toolName]
	if !ok {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(desc.Description)
	sb.WriteString("\n\nWHEN TO USE THIS TOOL:\n")
	for _, when := range desc.WhenToUse {
		sb.WriteString("- " + when + "\n")
	}
	if len(desc.Examples) > 0 {
		sb.WriteString("\nEXAMPLES:\n")
		for _, example := range desc.Examples {
			sb.WriteString(example + "\n")
		}
	}
	return sb.String()
}

// GetNextToolSuggestions returns suggested next tools for a given tool
func GetNextToolSuggestions(toolName string) []map[string]string {
	desc, ok := toolDescriptions[toolName]
	if !ok {
		return nil
	}
	suggestions := make([]map[string]string, 0, len(desc.NextTools))
	for _, next := range desc.NextTools {
		suggestions = append(suggestions, map[string]string{"tool": next})
	}
	return suggestions
}
