package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// loginCmd creates a new cobra.Command for logging into BinSavvy.
func loginCmd(app *App) *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to BinSavvy",
		Long:  "Login to BinSavvy using your username and password",
		Run: func(cmd *cobra.Command, args []string) {
			if username == "" {
				username = promptForInput("Username: ")
			}
			if password == "" {
				password = promptForPassword("Password: ")
			}

			if !validateCredentials(username, password) {
				cmd.PrintErrln("Error: Username and password cannot be empty.")
				return
			}

			ctx := cmd.Context()
			resp, err := app.API.Login(ctx, username, password)
			if err != nil {
				cmd.PrintErrln("Error: Failed to login to BinSavvy.")
				return
			}

			if err := app.Session.SetTokens(ctx, resp.Access, resp.Refresh); err != nil {
				cmd.PrintErrln("Error: Failed to save the session.")
				return
			}
			if resp.User.UserID != "" {
				if err := app.Users.Upsert(ctx, &resp.User); err != nil {
					cmd.PrintErrln("Warning: logged in, but the user record could not be cached.")
				}
			}

			cmd.Printf("Login was successful. Welcome, %s.\n", resp.User.Username)
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Username (prompted when omitted)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prompted when omitted)")

	return cmd
}

// promptForInput prompts the user for input and returns the trimmed string.
func promptForInput(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println("Error: Failed to read input.")
		os.Exit(1)
	}
	return strings.TrimSpace(input)
}

// promptForPassword prompts the user for a password securely and returns the trimmed string.
func promptForPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Println("Error: Failed to read password.")
		os.Exit(1)
	}
	fmt.Println() // Print a newline for better formatting
	return strings.TrimSpace(string(password))
}

// validateCredentials checks if the username and password are not empty.
func validateCredentials(username, password string) bool {
	return username != "" && password != ""
}
