package ai

import "context"

// AI is the external completion provider. It knows nothing about profiles or HTTP.
type AI interface {
	GetReply(
		ctx context.Context,
		systemPrompt string,
		userPrompt string,
	) (string, error)
}
