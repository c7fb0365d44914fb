//go:build !integration

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/nitro-cli/internal/config"
	"github.com/sells-group/nitro-cli/internal/model"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"serve", "predict", "analysis", "table"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "nitro", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommand_PrintsErrorsOnce(t *testing.T) {
	assert.True(t, rootCmd.SilenceErrors)
	assert.True(t, rootCmd.SilenceUsage)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "no match", err: eris.Wrap(model.ErrNoMatch, "predict"), want: "Combinação inválida. Verifique os valores informados."},
		{name: "missing field", err: eris.Wrap(model.MissingField("ifa"), "predict"), want: "Campo obrigatório não preenchido: IFA."},
		{name: "invalid field", err: model.InvalidField("dose"), want: "Valor inválido no campo Dose Máxima Diária mg/dia."},
		{name: "other", err: errors.New("load config: open nitro.yaml: permission denied"), want: "load config: open nitro.yaml: permission denied"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errorMessage(tt.err))
		})
	}
}

func TestServeCommand_Flags(t *testing.T) {
	flag := serveCmd.Flags().Lookup("port")
	require.NotNil(t, flag, "serve command should have --port flag")
	assert.Equal(t, "0", flag.DefValue)
}

func TestPredictCommand_Flags(t *testing.T) {
	for _, name := range []string{"ifa", "nitrosamine", "limit", "dose", "ph", "pka", "nitrite", "amine", "temperature", "llm", "out"} {
		assert.NotNil(t, predictCmd.Flags().Lookup(name), "predict command should have --%s flag", name)
	}
}

func TestShutdownTimeout(t *testing.T) {
	assert.Equal(t, 10*time.Second, shutdownTimeout(config.ServerConfig{}))
	assert.Equal(t, 3*time.Second, shutdownTimeout(config.ServerConfig{ShutdownTimeoutSecs: 3}))
}

func TestRunServer_Lifecycle(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{
		Handler:           buildTestMux(t, nil),
		ReadHeaderTimeout: time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- runServer(ctx, srv, ln, time.Second)
	}()

	resp, err := http.Get(fmt.Sprintf("http://%s/health", addr))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close() //nolint:errcheck
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "ok")

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
