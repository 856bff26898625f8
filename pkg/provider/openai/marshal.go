package openai

import (
	"encoding/json"

	// Packages
	toolset "github.com/mutablelogic/go-toolset"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// SCHEMA -> OPENAI (OUTBOUND)

// openaiMessagesFromMessages converts messages to the OpenAI format
func openaiMessagesFromMessages(messages []schema.Message) ([]openaiMessage, error) {
	result := make([]openaiMessage, 0, len(messages))
	for _, message := range messages {
		switch message.Role {
		case schema.RoleSystem, schema.RoleUser:
			if message.HasToolCalls() {
				return nil, toolset.ErrBadParameter.Withf("%s message cannot carry tool calls", message.Role)
			}
			result = append(result, openaiMessage{Role: message.Role, Content: &message.Text})
		case schema.RoleAssistant:
			m := openaiMessage{Role: roleAssistant}
			if message.Text != "" || !message.HasToolCalls() {
				m.Content = &message.Text
			}
			for _, call := range message.ToolCalls {
				m.ToolCalls = append(m.ToolCalls, openaiToolCallFromCall(call))
			}
			result = append(result, m)
		default:
			return nil, toolset.ErrBadParameter.Withf("unsupported message role %q", message.Role)
		}
	}
	return result, nil
}

func openaiToolCallFromCall(call schema.ToolCall) openaiToolCall {
	arguments := string(call.Input)
	if arguments == "" {
		arguments = "{}"
	}
	return openaiToolCall{
		Id:   call.Id,
		Type: toolTypeFunction,
		Function: openaiFunction{
			Name:      call.Name,
			Arguments: arguments,
		},
	}
}

// toolDefinitionsFromTools converts tools to function definitions. Tools
// without parameters accept an empty object.
func toolDefinitionsFromTools(tools []schema.Tool) ([]toolDefinition, error) {
	result := make([]toolDefinition, 0, len(tools))
	for _, tool := range tools {
		if tool.Name == "" {
			return nil, toolset.ErrBadParameter.With("tool name is required")
		}
		parameters := emptyParameters
		if tool.Parameters != nil {
			data, err := json.Marshal(tool.Parameters)
			if err != nil {
				return nil, toolset.ErrBadParameter.Withf("tool %q: %v", tool.Name, err)
			}
			parameters = data
		}
		result = append(result, toolDefinition{
			Type: toolTypeFunction,
			Function: toolFunctionDef{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  parameters,
			},
		})
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// OPENAI -> SCHEMA (INBOUND)

// messageFromResponse returns the first choice as an assistant message
func messageFromResponse(response *chatCompletionResponse) (*schema.Message, *schema.Usage, error) {
	if len(response.Choices) == 0 {
		return nil, nil, toolset.ErrInternalServerError.With("no choices in response")
	}
	choice := response.Choices[0]
	message := &schema.Message{
		Role:   roleAssistant,
		Reason: choice.FinishReason,
	}
	if choice.Message.Content != nil {
		message.Text = *choice.Message.Content
	} else if choice.Message.Refusal != nil {
		message.Text = *choice.Message.Refusal
	}
	for _, call := range choice.Message.ToolCalls {
		if call.Type != "" && call.Type != toolTypeFunction {
			continue
		}
		message.ToolCalls = append(message.ToolCalls, schema.ToolCall{
			Id:    call.Id,
			Name:  call.Function.Name,
			Input: inputFromArguments(call.Function.Arguments),
		})
	}
	return message, &schema.Usage{
		InputTokens:  response.Usage.PromptTokens,
		OutputTokens: response.Usage.CompletionTokens,
	}, nil
}

// inputFromArguments returns the arguments as raw JSON. Arguments which
// are not valid JSON are returned as a JSON string, so that validation
// against the tool schema reports them.
func inputFromArguments(arguments string) json.RawMessage {
	switch {
	case arguments == "":
		return json.RawMessage(`{}`)
	case json.Valid([]byte(arguments)):
		return json.RawMessage(arguments)
	default:
		data, _ := json.Marshal(arguments)
		return json.RawMessage(data)
	}
}
