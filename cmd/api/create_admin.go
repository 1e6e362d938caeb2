package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/site-backend/internal/audit"
	"github.com/BruksfildServices01/site-backend/internal/auth"
	"github.com/BruksfildServices01/site-backend/internal/config"
	"github.com/BruksfildServices01/site-backend/internal/db"
	infraRepo "github.com/BruksfildServices01/site-backend/internal/infra/repository"
	"github.com/BruksfildServices01/site-backend/internal/logging"
	ucAuth "github.com/BruksfildServices01/site-backend/internal/usecase/auth"
	"github.com/BruksfildServices01/site-backend/internal/validators"
)

var adminPayload validators.RegisterPayload

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create the administrator account if it does not exist yet",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logging.New(cfg.Logging)

		// Flags win over the environment, which config.Load may have
		// filled from .env.
		p := adminPayload
		p.FirstName = orEnv(p.FirstName, "ADMIN_FIRST_NAME", "Admin")
		p.LastName = orEnv(p.LastName, "ADMIN_LAST_NAME", "Vilo")
		p.Email = orEnv(p.Email, "ADMIN_EMAIL", "admin@viloassist.com")
		p.Password = orEnv(p.Password, "ADMIN_PASSWORD", "")

		in, err := validators.Register(p)
		if err != nil {
			return err
		}

		gdb, err := db.NewDB(cfg)
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		if err := db.Migrate(gdb); err != nil {
			return err
		}

		svc := ucAuth.NewService(
			infraRepo.NewUserGormRepository(gdb),
			auth.NewHasher(cfg.BcryptCost),
			auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpire),
			audit.Nop{},
		)

		user, created, err := svc.CreateAdmin(cmd.Context(), in)
		if err != nil {
			return fmt.Errorf("create admin: %w", err)
		}
		if !created {
			log.Info("account already exists", "email", user.Email, "role", user.Role)
			return nil
		}
		log.Info("admin created", "id", user.ID, "email", user.Email)
		return nil
	},
}

func init() {
	f := createAdminCmd.Flags()
	f.StringVar(&adminPayload.FirstName, "first-name", "", "first name (or ADMIN_FIRST_NAME)")
	f.StringVar(&adminPayload.LastName, "last-name", "", "last name (or ADMIN_LAST_NAME)")
	f.StringVar(&adminPayload.Email, "email", "", "login email (or ADMIN_EMAIL)")
	f.StringVar(&adminPayload.Password, "password", "", "password (or ADMIN_PASSWORD)")
	rootCmd.AddCommand(createAdminCmd)
}

func orEnv(flag, key, def string) string {
	if flag != "" {
		return flag
	}
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
