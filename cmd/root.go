package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/nitro-cli/internal/config"
	"github.com/sells-group/nitro-cli/internal/model"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "nitro",
	Short: "Nitrosamine formation prediction and risk reports",
	Long:  "Looks up predicted nitrosamine formation for process conditions, classifies the risk against the intake limit and renders HTML reports.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		zap.L().Error("command failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, errorMessage(err))
		os.Exit(1)
	}
}

// errorMessage is the single line printed for a failed command: the user
// message for input errors, the error text otherwise.
func errorMessage(err error) string {
	switch {
	case eris.Is(err, model.ErrInvalidInput), eris.Is(err, model.ErrNoMatch), eris.Is(err, model.ErrMissingRequiredField):
		return model.UserMessage(err)
	default:
		return err.Error()
	}
}
