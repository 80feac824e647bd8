package anthropic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/deepnoodle-ai/llmkit/llm"
	"github.com/deepnoodle-ai/llmkit/providers"
)

// convertMessages splits a conversation into the system parameter and the
// user/assistant turns.
func convertMessages(messages []llm.Message) ([]anthropic.TextBlockParam, []anthropic.MessageParam, error) {
	var system []anthropic.TextBlockParam
	var converted []anthropic.MessageParam
	for i, msg := range messages {
		switch msg.Role {
		case llm.System:
			system = append(system, anthropic.TextBlockParam{Text: msg.Content})
		case llm.User:
			converted = append(converted, anthropic.NewUserMessage(anthropic.NewTextBlock(msg.Content)))
		case llm.Assistant:
			converted = append(converted, anthropic.NewAssistantMessage(anthropic.NewTextBlock(msg.Content)))
		default:
			return nil, nil, providers.NewRequestError(ProviderName,
				fmt.Errorf("unsupported role %q (index %d)", msg.Role, i))
		}
	}
	if len(converted) == 0 {
		return nil, nil, providers.NewRequestError(ProviderName, llm.ErrNoMessages)
	}
	return system, converted, nil
}

// responseText concatenates the text blocks of a message.
func responseText(msg *anthropic.Message) string {
	if msg == nil {
		return llm.NoResponseText
	}
	var sb strings.Builder
	for _, block := range msg.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(variant.Text)
		}
	}
	if sb.Len() == 0 {
		return llm.NoResponseText
	}
	return sb.String()
}

func classifyError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return providers.NewError(ProviderName, apiErr.StatusCode, "", err)
	}
	return providers.TransportError(ProviderName, err)
}
