package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/killallgit/practitioners-pod/internal/services/auth"
	"github.com/spf13/cobra"
)

// tokenCmd issues admin bearer tokens
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an admin API token",
	Long: `Sign an HS256 admin token with the configured auth.jwt_secret.
When auth.admin_emails is set, only those addresses may be issued tokens
or use them. Removing an address rejects its outstanding tokens.

Example:
  podsite token --email host@practitionerspod.com
  podsite token --email host@practitionerspod.com --ttl 1h`,
	RunE: runToken,
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.Flags().String("email", "", "admin email address (required)")
	tokenCmd.Flags().Duration("ttl", 0, "token lifetime (default auth.token_ttl)")
	_ = tokenCmd.MarkFlagRequired("email")
}

func runToken(cmd *cobra.Command, args []string) error {
	if appConfig == nil {
		return fmt.Errorf("configuration not loaded")
	}
	email, _ := cmd.Flags().GetString("email")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	svc, err := auth.NewService(auth.Config{
		Secret:      appConfig.Auth.JWTSecret,
		Issuer:      appConfig.Auth.Issuer,
		DefaultTTL:  appConfig.Auth.TokenTTL,
		AdminEmails: appConfig.Auth.AdminEmails,
	})
	if err != nil {
		return err
	}

	token, claims, err := svc.IssueToken(email, ttl)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires %s (%s)\n",
		claims.ExpiresAt.Time.Format(time.RFC3339), humanize.Time(claims.ExpiresAt.Time))
	return nil
}
