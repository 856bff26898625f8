package openai

import (
	"context"

	// Packages
	client "github.com/mutablelogic/go-client"
	toolset "github.com/mutablelogic/go-toolset"
	opt "github.com/mutablelogic/go-toolset/pkg/opt"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Generate sends the messages to the model with the tools it may call, and
// returns the assistant response with token usage
func (c *Client) Generate(ctx context.Context, model string, messages []schema.Message, tools []schema.Tool, opts ...opt.Opt) (*schema.Message, *schema.Usage, error) {
	// Apply options
	options, err := opt.Apply(opts...)
	if err != nil {
		return nil, nil, err
	}

	// Build request
	request, err := generateRequestFromOpts(model, messages, tools, options)
	if err != nil {
		return nil, nil, err
	}
	payload, err := client.NewJSONRequest(request)
	if err != nil {
		return nil, nil, err
	}

	// Send request
	var response chatCompletionResponse
	if err := c.DoWithContext(ctx, payload, &response, client.OptPath("chat", "completions")); err != nil {
		return nil, nil, err
	}

	// Return the response
	return messageFromResponse(&response)
}

// GenerateRequest builds a generate request from options without sending
// it, for debugging
func GenerateRequest(model string, messages []schema.Message, tools []schema.Tool, opts ...opt.Opt) (any, error) {
	options, err := opt.Apply(opts...)
	if err != nil {
		return nil, err
	}
	return generateRequestFromOpts(model, messages, tools, options)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func generateRequestFromOpts(model string, messages []schema.Message, tools []schema.Tool, options opt.Options) (*chatCompletionRequest, error) {
	if model == "" {
		return nil, toolset.ErrBadParameter.With("model is required")
	} else if len(messages) == 0 {
		return nil, toolset.ErrBadParameter.With("at least one message is required")
	}

	// Messages
	m, err := openaiMessagesFromMessages(messages)
	if err != nil {
		return nil, err
	}
	request := &chatCompletionRequest{
		Model:    model,
		Messages: m,
	}

	// Tools, and tool choice which defaults to auto when there are tools
	if len(tools) > 0 {
		defs, err := toolDefinitionsFromTools(tools)
		if err != nil {
			return nil, err
		}
		request.Tools = defs
		request.ToolChoice = toolChoiceAuto
		if tc := options.GetString(opt.ToolChoiceKey); tc != "" {
			request.ToolChoice = tc
		}
	}

	// Temperature
	if options.Has(opt.TemperatureKey) {
		v := options.GetFloat64(opt.TemperatureKey)
		request.Temperature = &v
	}

	// Max tokens
	if options.Has(opt.MaxTokensKey) {
		v := options.GetUint(opt.MaxTokensKey)
		request.MaxCompletionTokens = &v
	}

	return request, nil
}
