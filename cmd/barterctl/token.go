package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/qween-code/barter-qween/internal/auth"
)

var (
	tokenUser   string
	tokenSecret string
	tokenTTL    time.Duration
)

func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development API token",
		Long: `Sign an HS256 bearer token for the barterd API.

The secret defaults to $BARTER_JWT_SECRET.

Examples:
  barterctl token --user alice
  barterctl token --user bob --ttl 1h -o json`,
		RunE: runToken,
	}

	cmd.Flags().StringVarP(&tokenUser, "user", "u", "", "User ID to embed in the token (required)")
	cmd.Flags().StringVar(&tokenSecret, "secret", os.Getenv("BARTER_JWT_SECRET"), "Signing secret")
	cmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runToken(cmd *cobra.Command, _ []string) error {
	if tokenTTL <= 0 {
		return fmt.Errorf("ttl must be positive, got %s", tokenTTL)
	}
	expires := time.Now().Add(tokenTTL).UTC().Truncate(time.Second)

	tok, err := auth.GenerateToken(tokenSecret, tokenUser, tokenTTL)
	if err != nil {
		return err
	}

	return outputResult(cmd.OutOrStdout(), TokenResult{
		UserID:    tokenUser,
		Token:     tok,
		ExpiresAt: expires,
	}, outputFmt)
}
