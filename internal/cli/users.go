package cli

import (
	"context"
	"fmt"
	"os"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/martijn/clubhouse/internal/core/domain"
	"github.com/martijn/clubhouse/internal/core/service"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
	Long:  "Manage user accounts; admin accounts can only be minted from here",
}

var (
	addFirstname string
	addLastname  string
	addAdmin     bool
)

var usersAddCmd = &cobra.Command{
	Use:   "add <username>",
	Short: "Add a new user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		// Check if user already exists
		_, err = services.UserRepo.FindByUsername(cmd.Context(), username)
		if err == nil {
			return fmt.Errorf("user already exists: %s", username)
		}

		password, err := promptPassword()
		if err != nil {
			return err
		}

		// Hash password
		hashedPassword, err := services.AuthService.HashPassword(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		// Create user
		user := domain.NewUser(username, hashedPassword, addFirstname, addLastname)
		user.Admin = addAdmin
		if err := services.UserRepo.Create(cmd.Context(), user); err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		fmt.Printf("User '%s' created successfully\n", username)
		return nil
	},
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <username>",
	Short: "Delete a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		// Confirm deletion
		fmt.Printf("Are you sure you want to delete user '%s'? (yes/no): ", username)
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" {
			fmt.Println("Cancelled")
			return nil
		}

		if err := services.UserRepo.Delete(cmd.Context(), username); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		fmt.Printf("User '%s' deleted successfully\n", username)
		return nil
	},
}

var usersUpdatePasswordCmd = &cobra.Command{
	Use:   "update-password <username>",
	Short: "Update user password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		// Check if user exists
		user, err := services.UserRepo.FindByUsername(cmd.Context(), username)
		if err != nil {
			return fmt.Errorf("user not found: %s", username)
		}

		password, err := promptPassword()
		if err != nil {
			return err
		}

		// Hash password
		hashedPassword, err := services.AuthService.HashPassword(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		// Update user
		user.Password = hashedPassword
		user.UpdatedAt = time.Now()
		if err := services.UserRepo.Update(cmd.Context(), user); err != nil {
			return fmt.Errorf("failed to update user: %w", err)
		}

		fmt.Printf("Password updated for user '%s'\n", username)
		return nil
	},
}

var usersGrantAdminCmd = &cobra.Command{
	Use:   "grant-admin <username>",
	Short: "Grant admin rights to a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setAdmin(args[0], true)
	},
}

var usersRevokeAdminCmd = &cobra.Command{
	Use:   "revoke-admin <username>",
	Short: "Revoke admin rights from a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setAdmin(args[0], false)
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices()
		if err != nil {
			return err
		}
		defer services.Close()

		users, err := services.UserRepo.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list users: %w", err)
		}

		if len(users) == 0 {
			fmt.Println("No users found")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "USERNAME\tNAME\tMEMBER\tADMIN\tCREATED AT")
		for _, user := range users {
			fmt.Fprintf(w, "%s\t%s %s\t%t\t%t\t%s\n",
				user.Username,
				user.Firstname,
				user.Lastname,
				user.Membership,
				user.Admin,
				user.CreatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		w.Flush()

		return nil
	},
}

func setAdmin(username string, admin bool) error {
	services, err := initServices()
	if err != nil {
		return err
	}
	defer services.Close()

	user, err := services.UserRepo.FindByUsername(context.Background(), username)
	if err != nil {
		return fmt.Errorf("user not found: %s", username)
	}

	user.Admin = admin
	user.UpdatedAt = time.Now()
	if err := services.UserRepo.Update(context.Background(), user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	if admin {
		fmt.Printf("User '%s' is now an admin\n", username)
	} else {
		fmt.Printf("User '%s' is no longer an admin\n", username)
	}
	return nil
}

// promptPassword reads and confirms a password without echoing it. The same
// minimum length applies as on the sign-up form.
func promptPassword() (string, error) {
	fmt.Print("Enter password: ")
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	fmt.Print("Confirm password: ")
	confirmPassword, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}

	if string(password) != string(confirmPassword) {
		return "", fmt.Errorf("passwords do not match")
	}

	if len(password) < service.MinPasswordLength {
		return "", fmt.Errorf("password must be at least %d characters", service.MinPasswordLength)
	}

	return string(password), nil
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersAddCmd)
	usersCmd.AddCommand(usersDeleteCmd)
	usersCmd.AddCommand(usersUpdatePasswordCmd)
	usersCmd.AddCommand(usersGrantAdminCmd)
	usersCmd.AddCommand(usersRevokeAdminCmd)
	usersCmd.AddCommand(usersListCmd)

	usersAddCmd.Flags().StringVar(&addFirstname, "firstname", "", "first name")
	usersAddCmd.Flags().StringVar(&addLastname, "lastname", "", "last name")
	usersAddCmd.Flags().BoolVar(&addAdmin, "admin", false, "create as admin")
	_ = usersAddCmd.MarkFlagRequired("firstname")
	_ = usersAddCmd.MarkFlagRequired("lastname")
}
