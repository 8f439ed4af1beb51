// Package llm defines the text-generation capability the extraction levels
// depend on, plus tolerant JSON recovery for model replies.
package llm

import "context"

// Generator is the single capability the extractors need: UTF-8 prompt in,
// raw reply text out. The reply is expected to contain a JSON object or array
// somewhere; callers recover it with FirstJSONObject/FirstJSONArray.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, prompt string) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}
