package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/justsurfingit/job-hub/internal/dtos"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// maxPromptRunes bounds the page text sent to the model.
const maxPromptRunes = 20000

var ErrExtractionDisabled = errors.New("posting extraction is not configured")

// LLMService turns a raw job page into a posting draft.
type LLMService struct {
	Client llms.Model
}

// NewLLMService builds the Gemini client. An empty key yields a service whose
// Extract always fails with ErrExtractionDisabled.
func NewLLMService(ctx context.Context, apiKey, model string) (*LLMService, error) {
	if apiKey == "" {
		return &LLMService{}, nil
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &LLMService{Client: llm}, nil
}

const postingExtractionPrompt = `
You are a job posting extraction agent. Analyze the text of a job posting page and extract structured data.

### INSTRUCTIONS:
1. Ignore navigation menus, footers, "similar jobs" lists and advertisements.
2. Output valid JSON only. Do not wrap the output in markdown code blocks.
3. If a field is missing, use null (or an empty array). Do not guess.

### OUTPUT SCHEMA:
{
    "title": "Job title (e.g., Senior Backend Engineer)",
    "company": "Company name",
    "deadline": "Application deadline as YYYY-MM-DD, or null",
    "techStack": ["Go", "React", "AWS"],
    "summary": {
        "role": "What the job does",
        "requirements": ["Required qualification"],
        "preferred": ["Preferred qualification"],
        "stack": ["Technologies"],
        "process": "Hiring process steps",
        "location": "Location or Remote"
    }
}

### RAW CONTENT:
%s
`

// ExtractPosting returns a draft the client can review and submit to
// POST /postings. The link is taken from the request, not the model.
func (s *LLMService) ExtractPosting(ctx context.Context, rawHTML, url string) (dtos.PostingCreateRequest, error) {
	if s.Client == nil {
		return dtos.PostingCreateRequest{}, ErrExtractionDisabled
	}
	text := truncateRunes(HTMLToText(rawHTML), maxPromptRunes)
	if strings.TrimSpace(text) == "" {
		return dtos.PostingCreateRequest{}, fmt.Errorf("%w: page has no text", ErrInvalidInput)
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, fmt.Sprintf(postingExtractionPrompt, text))
	if err != nil {
		return dtos.PostingCreateRequest{}, fmt.Errorf("generate: %w", err)
	}
	draft, err := parseDraft(resp)
	if err != nil {
		return dtos.PostingCreateRequest{}, err
	}
	draft.Link = url
	return draft, nil
}

// parseDraft decodes the model answer, tolerating a surrounding code fence.
func parseDraft(resp string) (dtos.PostingCreateRequest, error) {
	resp = strings.TrimSpace(resp)
	if strings.HasPrefix(resp, "```") {
		resp = strings.TrimPrefix(resp, "```json")
		resp = strings.TrimPrefix(resp, "```")
		resp = strings.TrimSuffix(strings.TrimSpace(resp), "```")
	}
	var draft dtos.PostingCreateRequest
	if err := json.Unmarshal([]byte(resp), &draft); err != nil {
		return dtos.PostingCreateRequest{}, fmt.Errorf("decode model output: %w", err)
	}
	if draft.TechStack == nil {
		draft.TechStack = []string{}
	}
	return draft, nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
