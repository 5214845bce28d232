package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ctstone/libsignal/internal/domain/types"
)

func paramsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "params <staging|production|prod>",
		Short: "Decode and describe an environment's server parameters",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := types.ParseEnvironment(args[0])
			if err != nil {
				return err
			}
			p, err := wire.Params.Load(env)
			if err != nil {
				return err
			}
			url, err := wire.Params.ChatURL(env)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "environment: %s\n", p.Environment())
			fmt.Fprintf(out, "params id:   %s\n", p.ID())
			fmt.Fprintf(out, "chat url:    %s\n", url)
			return nil
		},
	}
}
