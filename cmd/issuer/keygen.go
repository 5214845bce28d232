package main

import (
	"crypto/rand"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ctstone/libsignal/internal/app"
	"github.com/ctstone/libsignal/internal/crypto"
	"github.com/ctstone/libsignal/internal/domain/types"
	"github.com/ctstone/libsignal/internal/protocol/zkcred"
	"github.com/ctstone/libsignal/internal/store"
)

func keygenCmd() *cobra.Command {
	var envName, outDir string
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate and seal issuer secret parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.LoadIssuerConfig(configPath)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("env") {
				envName = cfg.Issuer.Environment
			}
			if !cmd.Flags().Changed("out") {
				outDir = cfg.Issuer.KeyDir
			}
			env, err := types.ParseEnvironment(envName)
			if err != nil {
				return err
			}
			pass, err := passphrase(cfg, true)
			if err != nil {
				return err
			}

			secret, err := zkcred.GenerateServerSecretParams(env, rand.Reader)
			if err != nil {
				return err
			}
			keys := store.NewIssuerKeyFileStore(outDir)
			if err := keys.SaveIssuerKey(pass, secret); err != nil {
				return err
			}

			pub := secret.Public()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s\n", keys.Path(env))
			fmt.Fprintf(out, "params id: %s\n\n", pub.ID())
			fmt.Fprintf(out, "[environments.%s]\nparams = %q\n", env, crypto.B64(pub.Serialize()))
			return nil
		},
	}
	cmd.Flags().StringVar(&envName, "env", "staging", "environment the key issues for")
	cmd.Flags().StringVar(&outDir, "out", "", "directory for the sealed key (default issuer.key_dir)")
	return cmd
}
