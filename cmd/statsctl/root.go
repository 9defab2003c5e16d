package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/danmuck/genlstats/internal/config"
	"github.com/danmuck/genlstats/internal/logging"
)

type rootOptions struct {
	configPath string
	cfg        config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{cfg: config.Default()}
	cmd := &cobra.Command{
		Use:   "statsctl",
		Short: "Inspect and build TASKSTATS generic netlink payloads",
		Long: `statsctl decodes TASKSTATS generic netlink payloads captured from the
kernel and encodes GET requests, offline or over a local HTTP inspector.

Payloads are hex strings of the generic netlink header followed by its
attributes, without the outer netlink header.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.ConfigureRuntime()
			if opts.configPath != "" {
				cfg, err := config.Load(opts.configPath)
				if err != nil {
					return err
				}
				opts.cfg = cfg
			}
			if !logging.SetLevel(opts.cfg.LogLevel) {
				return fmt.Errorf("unknown log_level %q", opts.cfg.LogLevel)
			}
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a statsctl TOML config")

	cmd.AddCommand(newDecodeCmd(opts), newEncodeCmd(), newServeCmd(opts))
	return cmd
}

func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case config.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
}
