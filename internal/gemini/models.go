package gemini

import (
	"context"
	"strings"

	"google.golang.org/api/iterator"
)

// preferredModels are tried in order when the configured model is not in
// the live list; fast and cost-effective first.
var preferredModels = []string{
	"gemini-2.5-flash",
	"gemini-2.0-flash",
	"gemini-1.5-flash",
}

// ListGenerateModels enumerates available Gemini models that support
// generateContent. The result is de-duplicated and order-preserving;
// pagination is handled by the iterator.
func (c *Client) ListGenerateModels(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	var models []string
	seen := make(map[string]bool)

	it := c.client.ListModels(ctx)
	for {
		info, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, Classify(err)
		}

		supported := false
		for _, method := range info.SupportedGenerationMethods {
			if method == "generateContent" {
				supported = true
				break
			}
		}
		if !supported {
			continue
		}

		name := strings.TrimPrefix(info.Name, "models/")
		if !strings.HasPrefix(name, "gemini") || seen[name] {
			continue
		}
		seen[name] = true
		models = append(models, name)
	}

	if len(models) == 0 {
		return nil, &APIError{Kind: KindEmpty, Message: "no Gemini models with generateContent support were returned by the API"}
	}
	return models, nil
}

// ChooseModel resolves a usable model name from the live list: the
// preferred name if listed, else the first available well-known flash
// model, else the first listed model.
func (c *Client) ChooseModel(ctx context.Context, preferred string) (string, error) {
	models, err := c.ListGenerateModels(ctx)
	if err != nil {
		return "", err
	}
	for _, m := range models {
		if m == preferred {
			return m, nil
		}
	}
	for _, candidate := range preferredModels {
		for _, m := range models {
			if m == candidate {
				return m, nil
			}
		}
	}
	return models[0], nil
}
