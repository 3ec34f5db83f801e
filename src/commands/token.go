package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/username/bigmacindex/src/config"
	"github.com/username/bigmacindex/src/security"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the write endpoints",
	Long: `Issue a signed bearer token for POST /api/update_local_price and POST /api/update.

Examples:
  bigmacindex token --subject price-bot`,
	RunE: func(cmd *cobra.Command, args []string) error {
		auth := security.NewAuthService(config.Cfg.JWTSecret, config.Cfg.AccessTokenExpiry)
		return runToken(cmd.OutOrStdout(), auth, tokenSubject)
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "operator", "Token subject")
}

func runToken(out io.Writer, auth *security.AuthService, subject string) error {
	if err := auth.CheckSecret(); err != nil {
		return err
	}
	token, err := auth.GenerateToken(subject)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}
	fmt.Fprintln(out, token)
	fmt.Fprintf(out, "# subject %q, expires %s\n", subject, humanize.Time(time.Now().Add(auth.TokenExpiry)))
	return nil
}
