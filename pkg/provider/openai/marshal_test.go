package openai

import (
	"encoding/json"
	"testing"

	// Packages
	jsonschema "github.com/google/jsonschema-go/jsonschema"
	toolset "github.com/mutablelogic/go-toolset"
	schema "github.com/mutablelogic/go-toolset/pkg/schema"
	assert "github.com/stretchr/testify/assert"
	require "github.com/stretchr/testify/require"
)

func Test_marshal_001(t *testing.T) {
	// System and user messages carry text content
	assert := assert.New(t)
	messages, err := openaiMessagesFromMessages([]schema.Message{
		schema.NewMessage(schema.RoleSystem, "You are helpful"),
		schema.NewMessage(schema.RoleUser, "Hello"),
	})
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(schema.RoleSystem, messages[0].Role)
	assert.Equal("You are helpful", *messages[0].Content)
	assert.Equal(schema.RoleUser, messages[1].Role)
	assert.Equal("Hello", *messages[1].Content)
}

func Test_marshal_002(t *testing.T) {
	// Assistant tool calls have null content and string arguments
	assert := assert.New(t)
	messages, err := openaiMessagesFromMessages([]schema.Message{{
		Role: schema.RoleAssistant,
		ToolCalls: []schema.ToolCall{
			{Id: "call_1", Name: "GITHUB_STAR", Input: json.RawMessage(`{"owner":"a"}`)},
			{Id: "call_2", Name: "GITHUB_GET_USER"},
		},
	}})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Nil(messages[0].Content)
	require.Len(t, messages[0].ToolCalls, 2)
	assert.Equal("function", messages[0].ToolCalls[0].Type)
	assert.Equal(`{"owner":"a"}`, messages[0].ToolCalls[0].Function.Arguments)
	assert.Equal("{}", messages[0].ToolCalls[1].Function.Arguments)

	data, err := json.Marshal(messages[0])
	require.NoError(t, err)
	assert.Contains(string(data), `"content":null`)
}

func Test_marshal_003(t *testing.T) {
	// Unsupported roles are rejected
	assert := assert.New(t)
	_, err := openaiMessagesFromMessages([]schema.Message{schema.NewMessage(schema.RoleTool, "result")})
	assert.ErrorIs(err, toolset.ErrBadParameter)
	_, err = openaiMessagesFromMessages([]schema.Message{{Role: schema.RoleUser, ToolCalls: []schema.ToolCall{{Name: "x"}}}})
	assert.ErrorIs(err, toolset.ErrBadParameter)
}

func Test_marshal_004(t *testing.T) {
	// Tools become function definitions
	assert := assert.New(t)
	defs, err := toolDefinitionsFromTools([]schema.Tool{
		{
			Name:        "GITHUB_STAR",
			Description: "Star a repository",
			Parameters: &jsonschema.Schema{
				Type:     "object",
				Required: []string{"owner"},
				Properties: map[string]*jsonschema.Schema{
					"owner": {Type: "string"},
				},
			},
		},
		{Name: "GITHUB_GET_USER"},
	})
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal("function", defs[0].Type)
	assert.Equal("GITHUB_STAR", defs[0].Function.Name)
	assert.Equal("Star a repository", defs[0].Function.Description)
	assert.JSONEq(`{"type":"object","required":["owner"],"properties":{"owner":{"type":"string"}}}`, string(defs[0].Function.Parameters))
	assert.JSONEq(`{"type":"object","properties":{}}`, string(defs[1].Function.Parameters))

	_, err = toolDefinitionsFromTools([]schema.Tool{{Description: "no name"}})
	assert.ErrorIs(err, toolset.ErrBadParameter)
}

func Test_marshal_005(t *testing.T) {
	// Response with tool calls and usage
	assert := assert.New(t)
	var response chatCompletionResponse
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "chatcmpl-1",
		"choices": [{
			"index": 0,
			"message": {
				"role": "assistant",
				"content": null,
				"tool_calls": [
					{"id": "call_1", "type": "function", "function": {"name": "GITHUB_STAR", "arguments": "{\"owner\":\"composiohq\",\"repo\":\"composio\"}"}},
					{"id": "call_2", "type": "function", "function": {"name": "GITHUB_GET_USER", "arguments": ""}}
				]
			},
			"finish_reason": "tool_calls"
		}],
		"usage": {"prompt_tokens": 120, "completion_tokens": 30, "total_tokens": 150}
	}`), &response))

	message, usage, err := messageFromResponse(&response)
	require.NoError(t, err)
	assert.Equal(schema.RoleAssistant, message.Role)
	assert.Equal("tool_calls", message.Reason)
	assert.Equal("", message.Text)
	require.Len(t, message.ToolCalls, 2)
	assert.Equal("call_1", message.ToolCalls[0].Id)
	assert.Equal("GITHUB_STAR", message.ToolCalls[0].Name)
	assert.JSONEq(`{"owner":"composiohq","repo":"composio"}`, string(message.ToolCalls[0].Input))
	assert.JSONEq(`{}`, string(message.ToolCalls[1].Input))
	assert.Equal(uint(120), usage.InputTokens)
	assert.Equal(uint(30), usage.OutputTokens)
}

func Test_marshal_006(t *testing.T) {
	// No choices
	assert := assert.New(t)
	_, _, err := messageFromResponse(&chatCompletionResponse{})
	assert.ErrorIs(err, toolset.ErrInternalServerError)
}

func Test_marshal_007(t *testing.T) {
	// Invalid arguments are kept as a JSON string
	assert := assert.New(t)
	input := inputFromArguments(`{"owner":`)
	assert.True(json.Valid(input))
	assert.Equal(`"{\"owner\":"`, string(input))
}
