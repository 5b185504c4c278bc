package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/stunting-dashboard/internal/model"
	"github.com/Veraticus/stunting-dashboard/internal/query"
)

// Prompter asks for the six input features on a plain terminal.
type Prompter struct {
	reader *LineReader
	writer io.Writer
}

// NewPrompter creates a prompter reading from reader and writing prompts to writer.
func NewPrompter(reader io.Reader, writer io.Writer) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{reader: NewLineReader(reader), writer: writer}
}

// PromptFeatures asks for every feature in declaration order. An empty answer
// keeps the value from defaults, when present. The answers are returned
// unvalidated.
func (p *Prompter) PromptFeatures(ctx context.Context, defaults query.RawInputs) (query.RawInputs, error) {
	raw := make(query.RawInputs, len(model.FeatureNames))

	for _, name := range model.FeatureNames {
		prompt := name.Label()
		if def := defaults[name]; def != "" {
			prompt += " " + SubtleStyle.Render("["+def+"]")
		}
		if _, err := fmt.Fprint(p.writer, FormatPrompt(prompt)); err != nil {
			return nil, fmt.Errorf("failed to write prompt: %w", err)
		}

		line, err := p.reader.ReadLine(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("input ended before %s was entered: %w", name.Label(), err)
			}
			return nil, err
		}

		if line == "" {
			line = defaults[name]
		}
		raw[name] = line
	}

	return raw, nil
}
