package ai

import "context"

const defaultStubReply = "Your path ahead is bright: steady growth in your career, deeper bonds with the people around you, and a calm, healthy stretch of years. Keep doing what brings you peace."

// StubClient answers without leaving the process. Used with AI_STUB=true.
// A non-nil Err is returned instead of Reply.
type StubClient struct {
	Reply string
	Err   error
}

func NewStubClient() *StubClient {
	return &StubClient{Reply: defaultStubReply}
}

func (s *StubClient) GetReply(ctx context.Context, _ string, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &UpstreamError{Kind: KindTransport, Err: err}
	}
	if s.Err != nil {
		return "", newUpstreamError(s.Err)
	}
	return s.Reply, nil
}
