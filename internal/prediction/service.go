package prediction

import (
	"context"
	"errors"

	"github.com/Vovarama1992/life-prediction-api/internal/ai"
	"github.com/Vovarama1992/life-prediction-api/internal/logger"
)

type service struct {
	ai  ai.AI
	log *logger.Logger
}

func NewService(aiClient ai.AI, log *logger.Logger) Service {
	if log == nil {
		log = logger.Nop()
	}
	return &service{
		ai:  aiClient,
		log: log.With("component", "prediction"),
	}
}

// Predict makes exactly one completion call. Every failure is returned as
// *ai.UpstreamError.
func (s *service) Predict(ctx context.Context, profile UserProfile) (string, error) {
	prompt := BuildPrompt(profile)
	s.log.Debug("prompt built", "prompt", prompt)

	reply, err := s.ai.GetReply(ctx, PersonaPrompt, prompt)
	if err != nil {
		var upErr *ai.UpstreamError
		if !errors.As(err, &upErr) {
			upErr = &ai.UpstreamError{Kind: ai.KindTransport, Err: err}
		}
		return "", upErr
	}

	s.log.Info("prediction generated", "chars", len(reply))
	return reply, nil
}
