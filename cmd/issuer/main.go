package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ctstone/libsignal/internal/app"
)

var configPath string

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "issuer",
		Short:        "Development issuer for expiring profile key credentials",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "TOML config file")
	root.AddCommand(keygenCmd(), serveCmd())
	return root
}

// passphrase returns the configured passphrase or prompts for one.
func passphrase(cfg *app.IssuerConfig, confirm bool) (string, error) {
	if cfg.Issuer.Passphrase != "" {
		return cfg.Issuer.Passphrase, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no passphrase configured and stdin is not a terminal")
	}
	first, err := prompt(fd, "Issuer key passphrase: ")
	if err != nil {
		return "", err
	}
	if confirm {
		again, err := prompt(fd, "Repeat passphrase: ")
		if err != nil {
			return "", err
		}
		if again != first {
			return "", errors.New("passphrases do not match")
		}
	}
	if first == "" {
		return "", errors.New("empty passphrase")
	}
	return first, nil
}

func prompt(fd int, label string) (string, error) {
	fmt.Fprint(os.Stderr, label)
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", errors.Wrap(err, "read passphrase")
	}
	return string(b), nil
}
