package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danmuck/genlstats/internal/inspect"
)

func newEncodeCmd() *cobra.Command {
	var (
		spec      inspect.RequestSpec
		pid, tgid uint32
	)
	cmd := &cobra.Command{
		Use:   "encode",
		Short: "Encode a TASKSTATS GET request as hex",
		Long: `Encode prints the generic netlink payload of a GET request. Exactly one
of --pid, --tgid, --register or --deregister must be given.

Example:
  statsctl encode --pid 1234
  statsctl encode --register 0-3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("pid") {
				spec.PID = &pid
			}
			if cmd.Flags().Changed("tgid") {
				spec.TGID = &tgid
			}
			payload, err := inspect.EncodeHex(spec)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), payload)
			return err
		},
	}
	cmd.Flags().Uint32Var(&pid, "pid", 0, "task id")
	cmd.Flags().Uint32Var(&tgid, "tgid", 0, "thread group id")
	cmd.Flags().StringVar(&spec.Register, "register", "", "cpulist to subscribe to exit events on")
	cmd.Flags().StringVar(&spec.Deregister, "deregister", "", "cpulist to unsubscribe from")
	return cmd
}
