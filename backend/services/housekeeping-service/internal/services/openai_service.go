package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// ProofRating mirrors the expected JSON from the rate_cleaning_proof tool.
type ProofRating struct {
	Rating   float64 `json:"rating"`
	Feedback string  `json:"feedback"`
}

// ProofRater scores a proof photo for a task. A nil rating with a nil error
// means rating is disabled.
type ProofRater interface {
	RateProof(ctx context.Context, imageURL string, def models.TaskDefinition) (*ProofRating, error)
}

// OpenAIService wraps the OpenAI client. If client is nil, rating is skipped.
type OpenAIService struct {
	client *openai.Client
}

// NewOpenAIService creates the service. Pass an empty apiKey to disable calls.
func NewOpenAIService(apiKey string) *OpenAIService {
	if apiKey == "" {
		return &OpenAIService{client: nil}
	}
	c := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIService{client: &c}
}

// RateProof sends the photo to GPT-4o Vision. imageURL may be an https URL
// or an inline data URL.
func (s *OpenAIService) RateProof(
	ctx context.Context,
	imageURL string,
	def models.TaskDefinition,
) (*ProofRating, error) {
	if s.client == nil || imageURL == "" {
		return nil, nil
	}

	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"rating":   map[string]any{"type": "number", "minimum": 1, "maximum": 10},
			"feedback": map[string]string{"type": "string"},
		},
		"required":             []string{"rating", "feedback"},
		"additionalProperties": false,
	}

	fn := shared.FunctionDefinitionParam{
		Name:        "rate_cleaning_proof",
		Description: openai.String("Rate how well the photographed area has been cleaned."),
		Strict:      openai.Bool(true),
		Parameters:  schema,
	}

	area := def.Area
	if area == "" {
		area = "the area"
	}

	req := openai.ChatCompletionNewParams{
		Model: shared.ChatModelGPT4oMini,
		Messages: []openai.ChatCompletionMessageParamUnion{{
			OfUser: &openai.ChatCompletionUserMessageParam{
				Content: openai.ChatCompletionUserMessageParamContentUnion{
					OfArrayOfContentParts: []openai.ChatCompletionContentPartUnionParam{
						openai.TextContentPart(fmt.Sprintf(`This photo is proof of the housekeeping task "%s" in %s.

Return JSON by calling rate_cleaning_proof(strict).
Rules:
1. rating is 1 (dirty or unrelated photo) to 10 (spotless).
2. feedback is one short sentence a supervisor can act on.`, def.Label, area)),
						openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
							URL:    imageURL,
							Detail: "low",
						}),
					},
				},
			},
		}},
		Tools: []openai.ChatCompletionToolParam{{
			Function: fn,
		}},
		ToolChoice: openai.ChatCompletionToolChoiceOptionUnionParam{
			OfChatCompletionNamedToolChoice: &openai.ChatCompletionNamedToolChoiceParam{
				Function: openai.ChatCompletionNamedToolChoiceFunctionParam{
					Name: "rate_cleaning_proof",
				},
			},
		},
	}

	resp, err := s.client.Chat.Completions.New(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 || len(resp.Choices[0].Message.ToolCalls) == 0 {
		return nil, fmt.Errorf("openai: no function call returned")
	}

	var out ProofRating
	if err := json.Unmarshal(
		[]byte(resp.Choices[0].Message.ToolCalls[0].Function.Arguments),
		&out,
	); err != nil {
		return nil, fmt.Errorf("unmarshal proof rating: %w", err)
	}
	if out.Rating < 1 {
		out.Rating = 1
	} else if out.Rating > 10 {
		out.Rating = 10
	}

	return &out, nil
}
