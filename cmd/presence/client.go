package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jpalmerr/presence/internal/client"
	"github.com/jpalmerr/presence/internal/status"
)

const defaultURL = "http://localhost:8080"

// Terminal hooks, replaced in tests.
var (
	isTerminal   = term.IsTerminal
	readPassword = term.ReadPassword
)

// getCmd reads the current status from a running endpoint.
var getCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current status",
	Long: `Read the current status from a running presence endpoint.

Prints the reported status and when it was published. A status older than
the server's threshold is printed as "offline".

Example:
  presence get --url https://presence.example.com`,
	Args: cobra.NoArgs,
	RunE: runGet,
}

// setCmd publishes a status to a running endpoint.
var setCmd = &cobra.Command{
	Use:   "set <online|busy>",
	Short: "Publish a status",
	Long: `Publish "online" or "busy" to a running presence endpoint.

The token is taken from --token, then from the SECRET_KEY environment
variable. If neither is set and stdin is a terminal, it is prompted for
without echo.

Example:
  presence set busy --url https://presence.example.com
  presence set online --token "$(pass show presence)"`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(status.Online), string(status.Busy)},
	RunE:      runSet,
}

func init() {
	for _, c := range []*cobra.Command{getCmd, setCmd} {
		c.Flags().String("url", defaultURL, "presence endpoint URL")
		c.Flags().Duration("timeout", 10*time.Second, "request timeout")
		rootCmd.AddCommand(c)
	}
	setCmd.Flags().String("token", "", "bearer token (defaults to $SECRET_KEY)")
}

func newClient(cmd *cobra.Command) *client.Client {
	url, _ := cmd.Flags().GetString("url")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	return client.New(url, timeout)
}

func runGet(cmd *cobra.Command, args []string) error {
	c := newClient(cmd)
	defer c.Close()

	rec, err := c.Get(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (since %s)\n", rec.Status, rec.Time().Format(time.RFC3339))
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	s := status.Status(strings.ToLower(args[0]))
	if !s.Publishable() {
		return fmt.Errorf("status must be %q or %q, got %q", status.Online, status.Busy, args[0])
	}

	token, err := resolveToken(cmd)
	if err != nil {
		return err
	}

	c := newClient(cmd)
	defer c.Close()

	if err := c.Set(cmd.Context(), token, s); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "status set to %s\n", s)
	return nil
}

// resolveToken picks the token from the flag, the environment, or a prompt.
func resolveToken(cmd *cobra.Command) (string, error) {
	if token, _ := cmd.Flags().GetString("token"); token != "" {
		return token, nil
	}
	if token := os.Getenv("SECRET_KEY"); token != "" {
		return token, nil
	}

	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return "", errors.New("no token: pass --token or set SECRET_KEY")
	}

	fmt.Fprint(cmd.ErrOrStderr(), "Token: ")
	raw, err := readPassword(fd)
	fmt.Fprintln(cmd.ErrOrStderr())
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	token := strings.TrimSpace(string(raw))
	if token == "" {
		return "", errors.New("no token entered")
	}
	return token, nil
}
