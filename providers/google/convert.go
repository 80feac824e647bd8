package google

import (
	"errors"
	"strings"

	"github.com/deepnoodle-ai/llmkit/llm"
	"github.com/deepnoodle-ai/llmkit/providers"
	"google.golang.org/genai"
)

// FlattenPrompt renders a conversation as one prompt, one line per message:
// "System: ", "User: " and "Assistant: " labels for the known roles and the
// raw content for any other role.
func FlattenPrompt(messages []llm.Message) string {
	lines := make([]string, 0, len(messages))
	for _, msg := range messages {
		switch msg.Role {
		case llm.System:
			lines = append(lines, "System: "+msg.Content)
		case llm.User:
			lines = append(lines, "User: "+msg.Content)
		case llm.Assistant:
			lines = append(lines, "Assistant: "+msg.Content)
		default:
			lines = append(lines, msg.Content)
		}
	}
	return strings.Join(lines, "\n")
}

// promptContents wraps the flattened prompt in a single user turn.
func promptContents(prompt string) []*genai.Content {
	return []*genai.Content{{
		Role:  genai.RoleUser,
		Parts: []*genai.Part{genai.NewPartFromText(prompt)},
	}}
}

// responseText returns the text of the first part of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return llm.NoResponseText
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return llm.NoResponseText
	}
	if text := content.Parts[0].Text; text != "" {
		return text
	}
	return llm.NoResponseText
}

// classifyError maps a genai error onto the error taxonomy. Gemini rejects
// a bad key with 400 and an API_KEY_INVALID reason, which is an
// authorization failure rather than a malformed request.
func classifyError(err error) error {
	apiErr, ok := asAPIError(err)
	if !ok {
		return providers.TransportError(ProviderName, err)
	}
	providerErr := providers.NewError(ProviderName, apiErr.Code, apiErr.Message, err)
	if providerErr.Kind == llm.KindRequestShape && invalidAPIKey(apiErr) {
		providerErr.Kind = llm.KindAuthorization
	}
	return providerErr
}

func asAPIError(err error) (genai.APIError, bool) {
	for ; err != nil; err = errors.Unwrap(err) {
		switch apiErr := any(err).(type) {
		case genai.APIError:
			return apiErr, true
		case *genai.APIError:
			if apiErr != nil {
				return *apiErr, true
			}
		}
	}
	return genai.APIError{}, false
}

func invalidAPIKey(apiErr genai.APIError) bool {
	for _, detail := range apiErr.Details {
		if reason, ok := detail["reason"].(string); ok && reason == "API_KEY_INVALID" {
			return true
		}
	}
	return strings.Contains(apiErr.Message, "API key not valid")
}
