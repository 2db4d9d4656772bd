package assistantsvc

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidyasetu/backend/core"
)

type fakeGenerator struct {
	prompt string
	resp   *genai.GenerateContentResponse
	err    error
}

func (g *fakeGenerator) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	if len(parts) > 0 {
		g.prompt = string(parts[0].(genai.Text))
	}
	return g.resp, g.err
}

func textResponse(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}}}
}

func TestGeminiModel_Answer(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse(genai.Text("Yes, "), &genai.Blob{MIMEType: "image/png"}, genai.Text("school is closed. "))}
	m := &GeminiModel{model: gen}

	got, err := m.Answer(context.Background(), "TODAY'S DATE: 2024-01-15", "Is school open?")
	require.NoError(t, err)
	assert.Equal(t, "Yes, school is closed.", got)
	assert.Contains(t, gen.prompt, "SCHOOL DATA:\nTODAY'S DATE: 2024-01-15\n\nQUESTION: Is school open?")
}

func TestGeminiModel_Answer_empty(t *testing.T) {
	for _, resp := range []*genai.GenerateContentResponse{nil, {}, textResponse()} {
		m := &GeminiModel{model: &fakeGenerator{resp: resp}}
		got, err := m.Answer(context.Background(), "digest", "q")
		require.NoError(t, err)
		assert.Equal(t, noAnswer, got)
	}
}

func TestGeminiModel_Answer_errors(t *testing.T) {
	wantErr := errors.New("quota exceeded")
	m := &GeminiModel{model: &fakeGenerator{err: wantErr}}
	_, err := m.Answer(context.Background(), "digest", "q")
	assert.Equal(t, wantErr, errors.Cause(err))

	m, err = NewGeminiModel(context.Background(), core.GeminiConfig{})
	require.NoError(t, err)
	_, err = m.Answer(context.Background(), "digest", "q")
	assert.Equal(t, ErrNotConfigured, err)
	assert.NoError(t, m.Close())
}
