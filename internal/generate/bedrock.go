package generate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
)

const (
	jsonContentType = "application/json"
	llamaTopP       = 0.9
	// anthropic models on Bedrock reject message bodies without this version
	anthropicVersion = "bedrock-2023-05-31"

	llamaTemplate = "<|begin_of_text|><|start_header_id|>user<|end_header_id|>\n" +
		"%s\n" +
		"<|eot_id|>\n" +
		"<|start_header_id|>assistant<|end_header_id|>\n"
)

// BedrockAPI is the subset of the Bedrock runtime client the adapters use.
type BedrockAPI interface {
	InvokeModel(ctx context.Context, in *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
	Converse(ctx context.Context, in *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// Params are the sampling settings shared by every adapter.
type Params struct {
	Temperature float64
	MaxTokens   int
}

// Bedrock holds one adapter per Bedrock model family.
type Bedrock struct {
	api          BedrockAPI
	params       Params
	llamaProfile string
}

// NewBedrock builds the adapters. Every Llama 3 id is served through
// llamaProfile, the inference-profile ARN.
func NewBedrock(api BedrockAPI, p Params, llamaProfile string) *Bedrock {
	return &Bedrock{api: api, params: p, llamaProfile: llamaProfile}
}

// Register installs the Bedrock families on r and makes the plain text
// body the fallback.
func (b *Bedrock) Register(r *Registry) {
	r.Register("llama3",
		AnyOf(Prefix("meta.llama3", "us.meta.llama3"), Exact(b.llamaProfile)),
		AdapterFunc(b.Llama3))
	r.Register("converse", Prefix("amazon.nova", "mistral."), AdapterFunc(b.Converse))
	r.Register("chat", Prefix("anthropic.", "cohere."), AdapterFunc(b.Chat))
	r.SetFallback(AdapterFunc(b.Text))
}

// Llama3 wraps prompt in the Llama 3 chat template and invokes the
// inference profile regardless of the requested id.
func (b *Bedrock) Llama3(ctx context.Context, _ string, prompt string) (string, error) {
	body := map[string]any{
		"prompt":      fmt.Sprintf(llamaTemplate, prompt),
		"max_gen_len": b.params.MaxTokens,
		"temperature": b.params.Temperature,
		"top_p":       llamaTopP,
	}
	reply, err := b.invoke(ctx, b.llamaProfile, body)
	if err != nil {
		return "", err
	}
	return reply.Generation, nil
}

// Converse uses the model-agnostic Converse API with one user message.
func (b *Bedrock) Converse(ctx context.Context, modelID, prompt string) (string, error) {
	out, err := b.api.Converse(ctx, &bedrockruntime.ConverseInput{
		ModelId: aws.String(modelID),
		Messages: []types.Message{{
			Role:    types.ConversationRoleUser,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: prompt}},
		}},
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens:   aws.Int32(int32(b.params.MaxTokens)),
			Temperature: aws.Float32(float32(b.params.Temperature)),
		},
	})
	if err != nil {
		return "", err
	}
	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", fmt.Errorf("%w: converse output %T", ErrEmptyReply, out.Output)
	}
	for _, block := range msg.Value.Content {
		if t, ok := block.(*types.ContentBlockMemberText); ok {
			return t.Value, nil
		}
	}
	return "", ErrEmptyReply
}

// Chat sends a messages-style body (Anthropic, Cohere).
func (b *Bedrock) Chat(ctx context.Context, modelID, prompt string) (string, error) {
	body := map[string]any{
		"messages":    []map[string]string{{"role": "user", "content": prompt}},
		"max_tokens":  b.params.MaxTokens,
		"temperature": b.params.Temperature,
	}
	if Prefix("anthropic.")(modelID) {
		body["anthropic_version"] = anthropicVersion
	}
	reply, err := b.invoke(ctx, modelID, body)
	if err != nil {
		return "", err
	}
	return reply.text(), nil
}

// Text sends the Titan-style inputText body used by every other model.
func (b *Bedrock) Text(ctx context.Context, modelID, prompt string) (string, error) {
	body := map[string]any{
		"inputText":   prompt,
		"maxTokens":   b.params.MaxTokens,
		"temperature": b.params.Temperature,
	}
	reply, err := b.invoke(ctx, modelID, body)
	if err != nil {
		return "", err
	}
	return reply.text(), nil
}

func (b *Bedrock) invoke(ctx context.Context, modelID string, body any) (*invokeReply, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	out, err := b.api.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(modelID),
		Body:        payload,
		ContentType: aws.String(jsonContentType),
		Accept:      aws.String(jsonContentType),
	})
	if err != nil {
		return nil, err
	}
	var reply invokeReply
	if err := json.Unmarshal(out.Body, &reply); err != nil {
		return nil, fmt.Errorf("decode %s reply: %w", modelID, err)
	}
	return &reply, nil
}

// invokeReply covers the reply shapes of the InvokeModel families.
type invokeReply struct {
	Results []struct {
		OutputText string `json:"outputText"`
	} `json:"results"`
	Completions []struct {
		Data struct {
			Text string `json:"text"`
		} `json:"data"`
	} `json:"completions"`
	Generation string `json:"generation"`
	OutputText string `json:"outputText"`
	Content    []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// text returns the first non-empty candidate in family order.
func (r *invokeReply) text() string {
	if len(r.Results) > 0 && r.Results[0].OutputText != "" {
		return r.Results[0].OutputText
	}
	if len(r.Completions) > 0 && r.Completions[0].Data.Text != "" {
		return r.Completions[0].Data.Text
	}
	if r.Generation != "" {
		return r.Generation
	}
	if r.OutputText != "" {
		return r.OutputText
	}
	for _, c := range r.Content {
		if c.Text != "" {
			return c.Text
		}
	}
	return ""
}
