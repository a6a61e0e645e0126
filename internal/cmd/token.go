package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lasatanica/backoffice/internal/session"
	"github.com/lasatanica/backoffice/internal/tui"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Inspect access tokens",
}

var tokenDecodeCmd = &cobra.Command{
	Use:   "decode [jwt]",
	Short: "Print the claims of an access token",
	Long: `Print the claims the client reads from an access token: subject (user
id), display name and expiry.

The signature is NOT verified. The server validates the token on every
request; this command only shows what the client will use.

Examples:
  # Decode a token passed as argument
  backoffice token decode eyJhbGciOi...

  # Prompt for the token
  backoffice token decode
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokenDecode,
}

func init() {
	tokenCmd.AddCommand(tokenDecodeCmd)
	rootCmd.AddCommand(tokenCmd)
}

func runTokenDecode(cmd *cobra.Command, args []string) error {
	var raw string
	if len(args) == 1 {
		raw = args[0]
	} else {
		if !tui.ShouldPrompt() {
			return NewErrorWithSuggestions("No token given", nil, "Pass the token as argument: backoffice token decode <jwt>")
		}
		var err error
		raw, err = tui.PromptForString(tui.Prompt{
			Message:  "Access token",
			Required: true,
			Secret:   true,
		})
		if err != nil {
			return err
		}
	}

	claims, err := session.DecodeToken(strings.TrimSpace(strings.TrimPrefix(raw, "Bearer ")))
	if err != nil {
		return TokenDecodeError(err)
	}

	rows := [][]string{
		{"Subject", claims.Subject},
		{"Name", claims.DisplayName()},
		{"Expires", expiryLabel(claims, time.Now())},
	}
	return renderTable(cmd.OutOrStdout(), []string{"Claim", "Value"}, rows)
}

func expiryLabel(claims *session.Claims, now time.Time) string {
	if claims.ExpiresAt == nil {
		return "never"
	}
	exp := claims.ExpiresAt.Time
	label := exp.Local().Format(time.RFC3339)
	if !exp.After(now) {
		return label + " " + color.RedString("(expired)")
	}
	return fmt.Sprintf("%s (in %s)", label, exp.Sub(now).Round(time.Second))
}
