package provider

import "context"

// Provider is one advisory endpoint: a single blocking chat completion per
// call. Implementations carry their own credentials and timeout.
type Provider interface {
	ID() string
	Enabled() bool
	Call(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
