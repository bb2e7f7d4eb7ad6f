package extract

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Archit-bit/voice-diary-app/internal/journal"
)

type claudeExtractor struct {
	client anthropic.Client
	model  string
}

func newClaude(apiKey, model string) Extractor {
	if model == "" {
		model = "claude-sonnet-4-20250514"
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	return &claudeExtractor{client: client, model: model}
}

func (c *claudeExtractor) Extract(ctx context.Context, transcript string) (*journal.ExtractedPayload, error) {
	schema := payloadSchema()

	props, _ := schema["properties"].(map[string]any)
	required, _ := schema["required"].([]any)

	inputSchema := anthropic.ToolInputSchemaParam{
		Properties: props,
	}
	if len(required) > 0 {
		inputSchema.ExtraFields = map[string]any{"required": required}
	}

	params := anthropic.MessageNewParams{
		Model:     c.model,
		MaxTokens: 1024,
		System: []anthropic.TextBlockParam{
			{Text: extractionInstructions + "\nAlways respond by calling the record_journal tool."},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(transcript)),
		},
		Tools: []anthropic.ToolUnionParam{
			{
				OfTool: &anthropic.ToolParam{
					Name:        "record_journal",
					Description: anthropic.String("Record the structured daily journal extracted from the transcript."),
					InputSchema: inputSchema,
				},
			},
		},
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return nil, &ExtractionError{Body: err.Error()}
	}

	for _, block := range resp.Content {
		if block.Type == "tool_use" {
			args, err := json.Marshal(block.Input)
			if err != nil {
				return nil, err
			}
			return journal.ParsePayload(args)
		}
	}

	// no tool call: fall back to the text block, which must itself be the
	// generated JSON
	for _, block := range resp.Content {
		if block.Type == "text" {
			return journal.ParsePayload([]byte(block.Text))
		}
	}

	return nil, fmt.Errorf("no content in response")
}
