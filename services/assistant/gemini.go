// Package assistantsvc answers school questions with Google's Gemini models.
package assistantsvc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/assistant"
)

const (
	answerTimeout = 60 * time.Second
	noAnswer      = "Sorry, I could not answer that right now. Please try rephrasing your question."

	promptTmpl = "You are the school assistant of the VidyaSetu app, helping principals, teachers, " +
		"drivers, parents and students of an Indian school. Answer briefly and politely, in the language " +
		"of the question. Only use the school data below; if it does not contain the answer, say so " +
		"instead of guessing.\n\n" +
		"SCHOOL DATA:\n%s\n\n" +
		"QUESTION: %s"
)

var ErrNotConfigured = errors.New("assistant is not configured")

// generator is satisfied by *genai.GenerativeModel.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type GeminiModel struct {
	client *genai.Client
	model  generator
}

var _ assistant.Model = (*GeminiModel)(nil) // interface compliance check

// NewGeminiModel returns a model that always fails with ErrNotConfigured when no API key is set.
func NewGeminiModel(ctx context.Context, conf core.GeminiConfig) (*GeminiModel, error) {
	if conf.APIKey == "" {
		return &GeminiModel{}, nil
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(conf.APIKey))
	if err != nil {
		return nil, errors.Wrap(err, "creating gemini client")
	}
	return &GeminiModel{client: client, model: client.GenerativeModel(conf.Model)}, nil
}

func (m *GeminiModel) Answer(ctx context.Context, digest, question string) (string, error) {
	if m.model == nil {
		return "", ErrNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, answerTimeout)
	defer cancel()

	resp, err := m.model.GenerateContent(ctx, genai.Text(fmt.Sprintf(promptTmpl, digest, question)))
	if err != nil {
		return "", errors.Wrap(err, "generating content")
	}
	return core.StringOr(responseText(resp), noAnswer), nil
}

func (m *GeminiModel) Close() error {
	if m.client == nil {
		return nil
	}
	return m.client.Close()
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return strings.TrimSpace(sb.String())
}
