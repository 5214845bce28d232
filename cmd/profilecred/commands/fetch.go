package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ctstone/libsignal/internal/domain/types"
)

func fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <staging|production|prod> <aci> <profile-key-hex>",
		Short: "Fetch and verify an expiring profile key credential",
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

			cred, err := wire.Credentials.FetchProfileKeyCredential(ctx, env, aci, pk)
			if err != nil {
				return err
			}
			defer cred.Wipe()

			fmt.Fprintf(cmd.OutOrStdout(), "credential for %s valid until %s\n", cred.Aci(), cred.Expiration().Format(time.RFC3339))
			return nil
		},
	}
}
