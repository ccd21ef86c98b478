package composer

import (
	"context"
	"fmt"
	"hash/fnv"

	"go.uber.org/zap"

	"remindme-service/internal/llm"
)

const (
	SourceModel    = "model"
	SourceFallback = "fallback"
)

// Result is a composed message. Text is never empty.
type Result struct {
	Text   string
	Source string
}

// Generator composes messages with an LLM and falls back to templates.
type Generator struct {
	llm      llm.TextGenerator
	fallback FallbackMode
	log      *zap.Logger
}

func NewGenerator(gen llm.TextGenerator, fallback FallbackMode, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	if fallback != FallbackOccasion {
		fallback = FallbackGeneric
	}
	return &Generator{llm: gen, fallback: fallback, log: log}
}

// Compose never fails: any model error, timeout or empty output yields the
// fallback text instead.
func (g *Generator) Compose(ctx context.Context, in Input) Result {
	prompt := BuildPrompt(in)
	session := SessionTag(in)

	raw, err := g.llm.Generate(ctx, llm.Request{
		System:    prompt.System,
		Prompt:    prompt.User,
		SessionID: session,
	})
	if err != nil {
		g.log.Warn("message generation failed, using fallback",
			zap.String("session", session), zap.Error(err))
		return Result{Text: Fallback(g.fallback, in), Source: SourceFallback}
	}

	text := Clean(raw)
	if text == "" {
		g.log.Warn("model returned empty message, using fallback", zap.String("session", session))
		return Result{Text: Fallback(g.fallback, in), Source: SourceFallback}
	}
	return Result{Text: text, Source: SourceModel}
}

// SessionTag correlates one generation in logs and provider metadata.
func SessionTag(in Input) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(in.ContactName))
	return fmt.Sprintf("message_gen_%s_%d", in.Occasion, h.Sum32())
}
