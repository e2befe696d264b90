package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/ballotbox/internal/auth"
)

var (
	adminUsername string
	adminEmail    string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage administrator accounts",
}

var adminCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an administrator account",
	Long: `Create an administrator account. The password is read from
BALLOTBOX_ADMIN_PASSWORD so it does not end up in shell history.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := adminPassword()
		if err != nil {
			return err
		}

		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		admin, err := auth.NewPasswordAuthenticator(store).CreateAdmin(cmd.Context(), adminUsername, adminEmail, password)
		if err != nil {
			return fmt.Errorf("failed to create admin: %w", err)
		}
		logger.Info("Admin created", "id", admin.ID, "username", admin.Username)
		return nil
	},
}

var adminPasswdCmd = &cobra.Command{
	Use:   "passwd",
	Short: "Set an administrator's password",
	Long: `Replace an administrator's password without knowing the old one. The
new password is read from BALLOTBOX_ADMIN_PASSWORD.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := adminPassword()
		if err != nil {
			return err
		}

		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := auth.NewPasswordAuthenticator(store).SetAdminCredential(cmd.Context(), adminUsername, password); err != nil {
			return fmt.Errorf("failed to set admin password: %w", err)
		}
		logger.Info("Admin password updated", "username", adminUsername)
		return nil
	},
}

func adminPassword() (string, error) {
	password := os.Getenv("BALLOTBOX_ADMIN_PASSWORD")
	if password == "" {
		return "", errors.New("BALLOTBOX_ADMIN_PASSWORD is not set")
	}
	return password, nil
}

func init() {
	adminCreateCmd.Flags().StringVar(&adminUsername, "username", "", "Admin username")
	adminCreateCmd.Flags().StringVar(&adminEmail, "email", "", "Admin email address")
	_ = adminCreateCmd.MarkFlagRequired("username")
	_ = adminCreateCmd.MarkFlagRequired("email")

	adminPasswdCmd.Flags().StringVar(&adminUsername, "username", "", "Admin username")
	_ = adminPasswdCmd.MarkFlagRequired("username")

	adminCmd.AddCommand(adminCreateCmd, adminPasswdCmd)
	rootCmd.AddCommand(adminCmd)
}
