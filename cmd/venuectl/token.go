package main

import (
	"fmt"
	"time"

	"github.com/emx/guzellikharitam-backend/config"
	"github.com/emx/guzellikharitam-backend/internal/middleware"
	"github.com/emx/guzellikharitam-backend/pkg/util"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var (
		role    string
		venueID string
		userID  string
		email   string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for the operator or business panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			subject, err := tokenSubject(role, venueID, userID, email)
			if err != nil {
				return err
			}
			if ttl <= 0 {
				ttl = cfg.JWT.AccessTokenExpiry
			}

			tokens, err := util.GenerateTokenPair(subject, cfg.JWT.Secret, ttl, cfg.JWT.RefreshTokenExpiry)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tokens.AccessToken)
			return nil
		},
	}

	cmd.Flags().StringVar(&role, "role", middleware.RoleOperator, "operator or business")
	cmd.Flags().StringVar(&venueID, "venue", "", "Venue id (required for business tokens)")
	cmd.Flags().StringVar(&userID, "user", "", "Subject user id (random when empty)")
	cmd.Flags().StringVar(&email, "email", "", "Subject email")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "Token lifetime (defaults to JWT_ACCESS_TOKEN_EXPIRY)")
	return cmd
}

func tokenSubject(role, venueID, userID, email string) (util.TokenSubject, error) {
	switch role {
	case middleware.RoleOperator:
		venueID = ""
	case middleware.RoleBusiness:
		if venueID == "" {
			return util.TokenSubject{}, fmt.Errorf("--venue is required for business tokens")
		}
	default:
		return util.TokenSubject{}, fmt.Errorf("unknown role %q", role)
	}
	if userID == "" {
		userID = uuid.NewString()
	}
	return util.TokenSubject{UserID: userID, Email: email, Role: role, VenueID: venueID}, nil
}
