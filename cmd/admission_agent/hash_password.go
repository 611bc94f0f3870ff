package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/admission-advisor/internal/config"
	"github.com/spf13/cobra"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Print a bcrypt hash for DASHBOARD_PASSWORD_HASH",
	Long: `Reads a password from the first line of stdin and prints its bcrypt hash using BCRYPT_COST
and PASSWORD_PEPPER, ready to be stored in DASHBOARD_PASSWORD_HASH.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.NewPasswordConfig()
		if err != nil {
			return err
		}
		return hashPassword(cmd.InOrStdin(), cmd.OutOrStdout(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}

func hashPassword(in io.Reader, out io.Writer, cfg *config.PasswordConfig) error {
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read password: %w", err)
	}
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		return fmt.Errorf("password is empty")
	}

	hash, err := cfg.HashPassword(password)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hash)
	return err
}
