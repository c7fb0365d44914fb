// Package narrator asks a language model to write the prediction narrative.
// The model only formats text: the looked-up value and the classification
// are computed locally and passed in.
package narrator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/nitro-cli/internal/model"
	"github.com/sells-group/nitro-cli/internal/resilience"
	"github.com/sells-group/nitro-cli/pkg/anthropic"
)

// ErrEmptyResponse is returned when the model answers with no text.
var ErrEmptyResponse = eris.New("narrator: empty model response")

// Options configures an LLM narrator.
type Options struct {
	Model             string
	MaxTokens         int64
	Timeout           time.Duration
	RequestsPerMinute int
	Retry             resilience.Policy
}

// LLM writes narratives through the Anthropic Messages API.
type LLM struct {
	client  anthropic.Client
	opts    Options
	limiter *rate.Limiter
}

// New returns an LLM narrator. RequestsPerMinute <= 0 disables rate limiting.
func New(client anthropic.Client, opts Options) *LLM {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = 1024
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(opts.RequestsPerMinute)/60), 1)
	}
	return &LLM{client: client, opts: opts, limiter: limiter}
}

const systemPrompt = "Você é um especialista em avaliação de risco de nitrosaminas em insumos farmacêuticos ativos. " +
	"Redija em português do Brasil, em tom técnico e objetivo. Use exclusivamente os valores fornecidos; " +
	"não recalcule nem invente números."

// Prompt builds the user message for a prediction.
func Prompt(p model.Prediction) string {
	in := p.Input
	a := p.Assessment
	var b strings.Builder
	b.WriteString("Com base na predição teórica de Ashworth e colaboradores, redija o texto de um anexo de predição de formação de nitrosaminas.\n\n")
	b.WriteString("Parâmetros de busca na tabela de referência:\n")
	fmt.Fprintf(&b, "- Quantidade de amina: %s\n", in.Amine)
	fmt.Fprintf(&b, "- Níveis de nitrito: %s\n", in.Nitrite)
	fmt.Fprintf(&b, "- Temperatura: %s°C\n", in.Temperature)
	fmt.Fprintf(&b, "- pH: %s\n\n", strings.TrimSpace(in.PH))
	b.WriteString("Demais dados:\n")
	fmt.Fprintf(&b, "- pKa: %g\n", p.PKa)
	fmt.Fprintf(&b, "- IFA: %s\n", in.IFA)
	fmt.Fprintf(&b, "- Nitrosamina: %s\n", in.Nitrosamine)
	fmt.Fprintf(&b, "- Limite de ingestão diário: %g ng/dia\n", a.LimitNgPerDay)
	fmt.Fprintf(&b, "- Dose máxima diária: %g mg/dia\n\n", a.DoseMgPerDay)
	b.WriteString("Resultados calculados:\n")
	fmt.Fprintf(&b, "- Nitrosamina formada (tabela): %g ppb\n", p.PPB)
	fmt.Fprintf(&b, "- Especificação: %.2e ppm\n", a.ComputedPPM)
	fmt.Fprintf(&b, "- Percentual da especificação: %.4g%%\n", a.Percentage)
	fmt.Fprintf(&b, "- Risco: %s (limiar de %g%%)\n\n", a.Level.Label(), a.ThresholdPct)
	b.WriteString("Responda apenas com o texto do anexo, em parágrafos separados por linha em branco, sem marcação.")
	return b.String()
}

// Narrate returns the model's narrative for p.
func (l *LLM) Narrate(ctx context.Context, p model.Prediction) (string, error) {
	if l.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.opts.Timeout)
		defer cancel()
	}

	req := anthropic.MessageRequest{
		Model:     l.opts.Model,
		MaxTokens: l.opts.MaxTokens,
		System:    systemPrompt,
		Messages:  []anthropic.Message{{Role: "user", Content: Prompt(p)}},
	}

	resp, err := resilience.Retry(ctx, l.opts.Retry, func(ctx context.Context) (*anthropic.MessageResponse, error) {
		if err := l.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "narrator: rate limit wait")
		}
		resp, err := l.client.CreateMessage(ctx, req)
		if err != nil {
			if code := anthropic.StatusCode(err); resilience.IsTransientHTTPStatus(code) {
				return nil, resilience.NewTransientError(err, code)
			}
			return nil, err
		}
		return resp, nil
	})
	if err != nil {
		return "", eris.Wrap(err, "narrator: generate narrative")
	}

	resp.Usage.LogCost(l.opts.Model, "narrative")

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyResponse
	}
	zap.L().Debug("narrative generated",
		zap.String("ifa", p.Input.IFA),
		zap.String("stop_reason", resp.StopReason),
		zap.Int("chars", len(text)),
	)
	return text, nil
}
