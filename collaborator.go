// collaborator.go - Optional descriptive-text call to an external LLM service

package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"
)

const (
	collaboratorTimeout      = 6 * time.Second
	defaultCollaboratorModel = "gpt-4.1-mini"
)

// Collaborator issues a single best-effort text-generation request during
// the first processing stage. Its output is log color only; it never feeds
// the pixel pipeline and its failure never escapes this file as anything
// but an ErrCollaborator-kind error the caller is expected to drop.
type Collaborator struct {
	client  openai.Client
	model   string
	enabled bool
}

// NewCollaborator returns a disabled no-op collaborator when apiKey is
// empty; otherwise a live client with the given model (or the default).
func NewCollaborator(apiKey, model string) *Collaborator {
	if strings.TrimSpace(apiKey) == "" {
		return &Collaborator{}
	}
	if strings.TrimSpace(model) == "" {
		model = defaultCollaboratorModel
	}
	return &Collaborator{
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		enabled: true,
	}
}

// Enabled reports whether a live client is configured.
func (c *Collaborator) Enabled() bool { return c.enabled }

// DescribeSource asks the service for a one-line description of the media
// being processed. Callers log the result and nothing else.
func (c *Collaborator) DescribeSource(ctx context.Context, platformGuess, sourceName string) (string, error) {
	if !c.enabled {
		return "", &EngineError{
			Operation: "describe source",
			Details:   "collaborator not configured",
			Err:       ErrCollaborator,
		}
	}
	ctx, cancel := context.WithTimeout(ctx, collaboratorTimeout)
	defer cancel()

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You describe video clips in one short sentence for a processing log. No preamble."),
			openai.UserMessage(fmt.Sprintf("Platform: %s. Source name: %s.", platformGuess, sourceName)),
		},
		Model:       c.model,
		Temperature: openai.Float(0.2),
	})
	if err != nil {
		return "", &EngineError{
			Operation: "describe source",
			Details:   "completion request",
			Err:       fmt.Errorf("%w: %v", ErrCollaborator, err),
		}
	}
	if len(resp.Choices) == 0 {
		return "", &EngineError{
			Operation: "describe source",
			Details:   "empty response",
			Err:       ErrCollaborator,
		}
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// describeInBackground fires the call on its own goroutine and absorbs the
// outcome either way. The staged sequence never waits on it.
func (c *Collaborator) describeInBackground(platformGuess, sourceName string) {
	go func() {
		desc, err := c.DescribeSource(context.Background(), platformGuess, sourceName)
		if err != nil {
			log.Debug().Err(err).Msg("collaborator call absorbed")
			return
		}
		log.Info().Str("platform", platformGuess).Str("description", desc).Msg("source described")
	}()
}

// GuessPlatform maps well-known host substrings in a URL to a platform
// label for the collaborator prompt. Files and unknown hosts come back as
// generic labels.
func GuessPlatform(url string) string {
	u := strings.ToLower(url)
	switch {
	case u == "":
		return "upload"
	case strings.Contains(u, "tiktok."):
		return "tiktok"
	case strings.Contains(u, "youtube.") || strings.Contains(u, "youtu.be"):
		return "youtube"
	case strings.Contains(u, "instagram."):
		return "instagram"
	case strings.Contains(u, "vimeo."):
		return "vimeo"
	case strings.Contains(u, "twitter.") || strings.Contains(u, "x.com"):
		return "twitter"
	case strings.Contains(u, "facebook.") || strings.Contains(u, "fb.watch"):
		return "facebook"
	case strings.Contains(u, "shutterstock.") || strings.Contains(u, "gettyimages.") || strings.Contains(u, "pond5."):
		return "stock"
	}
	return "generic"
}
