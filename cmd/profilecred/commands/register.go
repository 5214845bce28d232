package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ctstone/libsignal/internal/domain/types"
)

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <staging|production|prod> <aci> <profile-key-hex>",
		Short: "Register a profile with a development issuer",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := types.ParseEnvironment(args[0])
			if err != nil {
				return err
			}
			aci, err := types.ParseAci(args[1])
			if err != nil {
				return err
			}
			pk, err := types.ParseProfileKeyHex(args[2])
			if err != nil {
				return err
			}
			defer pk.Wipe()

			ctx, cancel := commandContext(cmd)
			defer cancel()

			if err := wire.Credentials.RegisterProfile(ctx, env, aci, pk); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Registered profile with issuer")
			return nil
		},
	}
}
