package openai

import (
	"errors"
	"fmt"

	"github.com/deepnoodle-ai/llmkit/llm"
	"github.com/deepnoodle-ai/llmkit/providers"
	"github.com/openai/openai-go"
)

// convertMessages maps a conversation onto chat messages. An empty
// conversation or an unknown role is rejected before any request is made.
func convertMessages(messages []llm.Message) ([]openai.ChatCompletionMessageParamUnion, error) {
	if len(messages) == 0 {
		return nil, providers.NewRequestError(ProviderName, llm.ErrNoMessages)
	}
	converted := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for i, msg := range messages {
		switch msg.Role {
		case llm.System:
			converted = append(converted, openai.SystemMessage(msg.Content))
		case llm.User:
			converted = append(converted, openai.UserMessage(msg.Content))
		case llm.Assistant:
			converted = append(converted, openai.AssistantMessage(msg.Content))
		default:
			return nil, providers.NewRequestError(ProviderName,
				fmt.Errorf("unsupported role %q (index %d)", msg.Role, i))
		}
	}
	return converted, nil
}

// responseText returns the content of the first choice. A choice without
// content, such as one cut off by the token limit, yields the placeholder.
func responseText(completion *openai.ChatCompletion) string {
	if completion == nil || len(completion.Choices) == 0 {
		return llm.NoResponseText
	}
	if content := completion.Choices[0].Message.Content; content != "" {
		return content
	}
	return llm.NoResponseText
}

// classifyError maps an openai-go error onto the error taxonomy.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		return providers.NewError(ProviderName, apiErr.StatusCode, apiErr.Message, err)
	}
	return providers.TransportError(ProviderName, err)
}
