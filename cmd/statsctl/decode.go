package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/danmuck/genlstats/internal/inspect"
)

func newDecodeCmd(root *rootOptions) *cobra.Command {
	var (
		kind     string
		output   string
		familyID uint16
	)
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode hex payloads, one per line",
		Long: `Decode reads one hex payload per line from file, or stdin when no file is
given. Blank lines and lines starting with # are skipped.

Example:
  statsctl decode --kind request <<< 0101000008000100d2040000`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := inspect.ParseKind(kind)
			if err != nil {
				return err
			}
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			payloads, err := readPayloads(in)
			if err != nil {
				return err
			}

			opts := inspect.Options{FamilyID: root.cfg.FamilyID}
			if cmd.Flags().Changed("family-id") {
				opts.FamilyID = familyID
			}
			format := root.cfg.Output
			if cmd.Flags().Changed("output") {
				format = output
			}

			views, err := inspect.DecodeAll(cmd.Context(), k, payloads, root.cfg.Workers, opts)
			if err != nil {
				return err
			}
			if len(views) == 1 {
				return writeOutput(cmd.OutOrStdout(), format, views[0])
			}
			return writeOutput(cmd.OutOrStdout(), format, views)
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", string(inspect.KindEvent), "payload kind: request|event")
	cmd.Flags().StringVarP(&output, "output", "o", "json", "output format: json|yaml")
	cmd.Flags().Uint16Var(&familyID, "family-id", 0, "resolved TASKSTATS family id to report")
	return cmd
}

func readPayloads(r io.Reader) ([][]byte, error) {
	var payloads [][]byte
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		b, err := hex.DecodeString(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid hex payload: %w", line, err)
		}
		payloads = append(payloads, b)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(payloads) == 0 {
		return nil, fmt.Errorf("no payloads to decode")
	}
	return payloads, nil
}
