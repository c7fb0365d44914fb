package main

import (
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/nitro-cli/internal/config"
	"github.com/sells-group/nitro-cli/internal/metrics"
	"github.com/sells-group/nitro-cli/internal/narrator"
	"github.com/sells-group/nitro-cli/internal/predict"
	"github.com/sells-group/nitro-cli/internal/reference"
	"github.com/sells-group/nitro-cli/internal/resilience"
	"github.com/sells-group/nitro-cli/internal/risk"
	"github.com/sells-group/nitro-cli/pkg/anthropic"
)

// initService loads the reference table and wires the prediction service.
// The narrator is only attached when an Anthropic key is configured.
func initService(c *config.Config, m *metrics.Metrics) (*predict.Service, error) {
	table, err := reference.Load(c.Reference.Path)
	if err != nil {
		return nil, eris.Wrap(err, "init: load reference table")
	}

	var n predict.Narrator
	if c.Anthropic.Enabled() {
		n = newNarrator(c.Anthropic)
	} else {
		zap.L().Debug("anthropic key not set, generated narrative disabled")
	}

	return predict.NewService(table, risk.NewCalculator(c.Risk.ThresholdPct), n, m), nil
}

func newNarrator(c config.AnthropicConfig) *narrator.LLM {
	retry := resilience.DefaultPolicy("anthropic")
	if c.MaxAttempts > 0 {
		retry.Attempts = c.MaxAttempts
	}
	return narrator.New(anthropic.NewClient(c.Key, c.BaseURL), narrator.Options{
		Model:             c.Model,
		MaxTokens:         c.MaxTokens,
		Timeout:           time.Duration(c.TimeoutSecs) * time.Second,
		RequestsPerMinute: c.RequestsPerMinute,
		Retry:             retry,
	})
}
