package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ctstone/libsignal/internal/domain/types"
)

func accessKeyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "access-key <profile-key-hex>",
		Short: "Print the unidentified access key for a profile key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pk, err := types.ParseProfileKeyHex(args[0])
			if err != nil {
				return err
			}
			defer pk.Wipe()

			fmt.Fprintln(cmd.OutOrStdout(), wire.Credentials.AccessKey(pk).Base64())
			return nil
		},
	}
}
