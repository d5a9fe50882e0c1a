package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"content-hub/internal/config"
	"content-hub/internal/domain/entity"
	pgRepo "content-hub/internal/infra/adapter/persistence/postgres"
	userUC "content-hub/internal/usecase/user"
	"content-hub/pkg/security/password"
)

func newUserCommand(d deps, cfg func() *config.AppConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	var username, email, pass string
	create := &cobra.Command{
		Use:   "create-admin",
		Short: "Create an ADMIN account",
		Long: `Create an ADMIN account directly in the database.

The password is read from --password or, when omitted, from ADMIN_PASSWORD.
Admin passwords must pass the stricter strength policy.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if pass == "" {
				pass = os.Getenv("ADMIN_PASSWORD")
			}
			if pass == "" {
				return errors.New("password is required (--password or ADMIN_PASSWORD)")
			}
			if err := password.ValidateStrength(pass); err != nil {
				return err
			}

			c := cfg()
			return withDB(cmd.Context(), d, c, func(database *sql.DB) error {
				svc := &userUC.Service{
					Repo:   pgRepo.NewUserRepo(database),
					Hasher: password.NewHasher(c.Auth.PasswordHashCost),
				}
				u, err := svc.Register(cmd.Context(), userUC.RegisterInput{
					Username: username,
					Email:    email,
					Password: pass,
					UserType: entity.UserTypeAdmin,
				})
				if err != nil {
					return fmt.Errorf("create admin: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (%s)\n", u.Username, u.ID)
				return nil
			})
		},
	}
	create.Flags().StringVar(&username, "username", "", "account username")
	create.Flags().StringVar(&email, "email", "", "account email")
	create.Flags().StringVar(&pass, "password", "", "account password (prefer ADMIN_PASSWORD)")
	_ = create.MarkFlagRequired("username")
	_ = create.MarkFlagRequired("email")

	cmd.AddCommand(create)
	return cmd
}
