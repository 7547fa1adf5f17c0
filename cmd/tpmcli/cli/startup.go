package cli

import (
	"github.com/spf13/cobra"

	"github.com/cryptalis/esys/tpm2"
)

func startupCmd() *cobra.Command {
	var state bool
	cmd := &cobra.Command{
		Use:   "startup",
		Short: "Send TPM2_Startup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			su := tpm2.SUClear
			if state {
				su = tpm2.SUState
			}
			return withTPM(func(t *tpm2.TPM) error {
				cmd := tpm2.Startup{StartupType: su}
				return cmd.Execute(t)
			})
		},
	}
	cmd.Flags().BoolVar(&state, "state", false, "resume saved state (TPM_SU_STATE) instead of a clear start")
	return cmd
}

func shutdownCmd() *cobra.Command {
	var state bool
	cmd := &cobra.Command{
		Use:   "shutdown",
		Short: "Send TPM2_Shutdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			su := tpm2.SUClear
			if state {
				su = tpm2.SUState
			}
			return withTPM(func(t *tpm2.TPM) error {
				cmd := tpm2.Shutdown{ShutdownType: su}
				return cmd.Execute(t)
			})
		},
	}
	cmd.Flags().BoolVar(&state, "state", false, "save state (TPM_SU_STATE) instead of a clear shutdown")
	return cmd
}
