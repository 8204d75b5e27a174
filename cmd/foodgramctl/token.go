package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"foodgram/internal/domain"
	"foodgram/internal/pkg/jwt"
	"foodgram/internal/repository"
)

var tokenCmd = &cobra.Command{
	Use:   "token <user-id|email>",
	Short: "Issue a bearer token for an existing user",
	Long: `Token signs a JWT for the given user with the configured secret and
TTL. Sign-up and login live outside this service; use this for local
development and smoke tests.

Example:
  foodgramctl token 1
  foodgramctl token anna@foodgram.local`,
	Args: cobra.ExactArgs(1),
	RunE: runToken,
}

func runToken(cmd *cobra.Command, args []string) error {
	users := repository.NewUserRepository(db)

	var u *domain.User
	var err error
	if userID, convErr := strconv.ParseInt(args[0], 10, 64); convErr == nil {
		u, err = users.GetByID(cmd.Context(), userID)
	} else {
		u, err = users.GetByEmail(cmd.Context(), args[0])
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	token, err := jwt.New(cfg.JWTSecret, cfg.JWTTTL).GenerateToken(u.ID, string(u.Role))
	if err != nil {
		return fmt.Errorf("sign token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
