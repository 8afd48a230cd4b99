package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// Credentials are the values collected by the login form.
type Credentials struct {
	Email    string
	Password string
}

// PromptForLogin displays an interactive login form and returns the
// entered credentials. Used when the login command receives no flags.
func PromptForLogin(defaultEmail string) (Credentials, error) {
	creds := Credentials{Email: defaultEmail}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Placeholder("admin@example.com").
			Value(&creds.Email),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&creds.Password),
	))

	if err := form.Run(); err != nil {
		return Credentials{}, fmt.Errorf("prompt failed: %w", err)
	}

	if creds.Email == "" || creds.Password == "" {
		return Credentials{}, fmt.Errorf("email and password are required")
	}

	return creds, nil
}

// PromptForConfirmation displays a yes/no confirmation prompt. Delete
// commands use it unless --yes is passed.
func PromptForConfirmation(message string, defaultValue bool) (bool, error) {
	confirmed := defaultValue

	confirm := huh.NewConfirm().
		Title(message).
		Value(&confirmed)

	form := huh.NewForm(huh.NewGroup(confirm))

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}

	return confirmed, nil
}
