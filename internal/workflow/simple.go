package workflow

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"docuquery/internal/contextutil"
	"docuquery/internal/llm"
	"docuquery/internal/retrieval"
	"docuquery/internal/storage"
)

// maxToolRounds bounds the agent conversation. A grounded lookup needs one or
// two rounds; more means the model is wandering.
const maxToolRounds = 8

// ToolChatter runs one chat completion with tool definitions and returns the
// full assistant message.
type ToolChatter interface {
	ChatWithTools(ctx context.Context, messages []llm.Message, tools []llm.Tool) (llm.Message, error)
}

// SimplePipeline answers exact-lookup questions without filter generation or
// vector search: a tool-calling agent restricted to a fixed set of relational
// lookups answers directly from the stores.
type SimplePipeline struct {
	chatter         ToolChatter
	documents       storage.DocumentStore
	classifications storage.ClassificationStore
}

// NewSimplePipeline creates the simple-query pipeline.
func NewSimplePipeline(chatter ToolChatter, documents storage.DocumentStore, classifications storage.ClassificationStore) *SimplePipeline {
	return &SimplePipeline{chatter: chatter, documents: documents, classifications: classifications}
}

// Step runs the whole agent loop in one transition; the pipeline has no
// intermediate states.
func (p *SimplePipeline) Step(ctx context.Context, wc *Context, event Event) (Event, error) {
	switch event.(type) {
	case StartEvent:
		result, err := p.runAgent(ctx, wc.Query)
		if err != nil {
			return nil, err
		}
		return StopEvent{Result: result}, nil
	default:
		return nil, fmt.Errorf("simple pipeline: unexpected event %T", event)
	}
}

const simpleSystemPrompt = `You answer questions about a document library using only the provided tools. Call tools to look up documents and classifications, then answer from their results. If the question cannot be answered with these tools, reply with exactly: ` + retrieval.NoResultsMessage

func (p *SimplePipeline) tools() []llm.Tool {
	dateRangeProps := map[string]any{
		"start_date": map[string]any{"type": "string", "description": "Range start, YYYY-MM-DD"},
		"end_date":   map[string]any{"type": "string", "description": "Range end, YYYY-MM-DD"},
	}
	classificationProp := map[string]any{
		"classification": map[string]any{"type": "string", "description": "Exact classification name"},
	}

	return []llm.Tool{
		llm.NewFunctionTool("list_all_documents",
			"List every stored document with its classification.", nil),
		llm.NewFunctionTool("list_documents_by_classification",
			"List the names of documents under one classification.", map[string]any{
				"type":       "object",
				"properties": classificationProp,
				"required":   []string{"classification"},
			}),
		llm.NewFunctionTool("list_all_classifications",
			"List every classification name.", nil),
		llm.NewFunctionTool("list_documents_by_classification_and_date_range",
			"List the names of documents under one classification uploaded within a date range.", map[string]any{
				"type": "object",
				"properties": map[string]any{
					"classification": classificationProp["classification"],
					"start_date":     dateRangeProps["start_date"],
					"end_date":       dateRangeProps["end_date"],
				},
				"required": []string{"classification", "start_date", "end_date"},
			}),
		llm.NewFunctionTool("list_documents_by_date_range",
			"List the names of documents uploaded within a date range.", map[string]any{
				"type":       "object",
				"properties": dateRangeProps,
				"required":   []string{"start_date", "end_date"},
			}),
	}
}

// runAgent drives the bounded tool conversation and returns the agent's final
// text reply.
func (p *SimplePipeline) runAgent(ctx context.Context, query string) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)
	tools := p.tools()

	messages := []llm.Message{
		{Role: "system", Content: simpleSystemPrompt},
		{Role: "user", Content: query},
	}

	for round := 0; round < maxToolRounds; round++ {
		msg, err := p.chatter.ChatWithTools(ctx, messages, tools)
		if err != nil {
			return "", fmt.Errorf("agent chat failed: %w", err)
		}

		if len(msg.ToolCalls) == 0 {
			reply := strings.TrimSpace(msg.Content)
			if reply == "" {
				return retrieval.NoResultsMessage, nil
			}
			return reply, nil
		}

		messages = append(messages, msg)
		for _, call := range msg.ToolCalls {
			result := p.executeTool(ctx, call)
			logger.DebugContext(ctx, "agent tool call", "tool", call.Function.Name)

			toolMsg, err := llm.ToolResultMessage(call, result)
			if err != nil {
				return "", fmt.Errorf("failed to encode tool result: %w", err)
			}
			messages = append(messages, toolMsg)
		}
	}

	return "", fmt.Errorf("agent did not answer after %d rounds", maxToolRounds)
}

// executeTool dispatches one tool call. Lookup failures and unknown tools are
// reported back to the model as an error payload rather than aborting the
// run.
func (p *SimplePipeline) executeTool(ctx context.Context, call llm.ToolCall) any {
	var args struct {
		Classification string `json:"classification"`
		StartDate      string `json:"start_date"`
		EndDate        string `json:"end_date"`
	}
	if call.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return map[string]string{"error": fmt.Sprintf("invalid arguments: %v", err)}
		}
	}

	var (
		result any
		err    error
	)
	switch call.Function.Name {
	case "list_all_documents":
		result, err = p.documents.List(ctx)
	case "list_documents_by_classification":
		result, err = p.documents.ListNamesByClassification(ctx, args.Classification)
	case "list_all_classifications":
		result, err = p.classifications.ListAll(ctx)
	case "list_documents_by_classification_and_date_range":
		result, err = p.documents.ListNamesByClassificationAndDateRange(ctx, args.Classification, args.StartDate, args.EndDate)
	case "list_documents_by_date_range":
		result, err = p.documents.ListNamesByDateRange(ctx, args.StartDate, args.EndDate)
	default:
		return map[string]string{"error": fmt.Sprintf("unknown tool %q", call.Function.Name)}
	}

	if err != nil {
		return map[string]string{"error": err.Error()}
	}
	return result
}
