// Package gemini wraps the Gemini generateContent API for slide-to-card
// batch runs: one text prompt plus one-or-two inline images in, one text
// completion out.
package gemini

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	// connectTimeout bounds connectivity checks and model listing.
	connectTimeout = 10 * time.Second
	// generateTimeout bounds content-generation calls; vision requests on
	// large slides can take a while.
	generateTimeout = 120 * time.Second
)

// Client is a thin wrapper around the genai client bound to one model.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
}

// NewClient creates a Gemini client for the given API key and model name.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	c := &Client{client: client}
	c.SetModel(model)
	return c, nil
}

// SetModel rebinds the client to another model name.
func (c *Client) SetModel(name string) {
	m := c.client.GenerativeModel(name)
	m.SetTemperature(0.3)
	m.SetTopP(0.95)
	c.model = m
	c.name = name
}

// Model returns the bound model name.
func (c *Client) Model() string { return c.name }

func (c *Client) Close() {
	c.client.Close()
}

// Image is one inline image attachment.
type Image struct {
	// Format is the genai inline-data image format, e.g. "jpeg" or "png".
	Format string
	Data   []byte
}

// LoadImage reads an image file into an inline attachment, deriving the
// format from the file extension.
func LoadImage(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, fmt.Errorf("failed to read image %s: %w", filepath.Base(path), err)
	}
	return Image{Format: imageFormat(path), Data: data}, nil
}

func imageFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".webp":
		return "webp"
	default:
		return "jpeg"
	}
}

// GenerateCards submits the profile prompt with the target image and, for
// context continuity, at most one previous image. The raw completion text
// is returned untouched; parsing is the caller's concern.
func (c *Client) GenerateCards(ctx context.Context, prompt string, current Image, previous *Image) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, generateTimeout)
	defer cancel()

	parts := []genai.Part{genai.Text(prompt)}
	if previous != nil {
		parts = append(parts,
			genai.Text("--- CONTEXT ONLY (Previous Page) ---"),
			genai.ImageData(previous.Format, previous.Data),
		)
	}
	parts = append(parts,
		genai.Text("--- TARGET IMAGE (Generate Cards) ---"),
		genai.ImageData(current.Format, current.Data),
	)

	resp, err := c.model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", Classify(err)
	}
	return completionText(resp)
}

// TestConnection performs a minimal generation request with a short
// timeout to verify the key and model work.
func (c *Client) TestConnection(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx, genai.Text("Hello"))
	if err != nil {
		return Classify(err)
	}
	_, err = completionText(resp)
	return err
}

// completionText flattens the first candidate's text parts, mapping
// safety-filtered and empty completions to typed errors.
func completionText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &APIError{Kind: KindEmpty, Message: "no response candidates from API"}
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", &APIError{Kind: KindSafety, Message: "content filtered by safety settings"}
	}

	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}
	out := strings.TrimSpace(text.String())
	if out == "" {
		return "", &APIError{Kind: KindEmpty, Message: "empty response from API"}
	}
	return out, nil
}
