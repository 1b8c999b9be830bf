// Command hashsecret creates the admin secret file used to protect the
// /admin routes. It prompts for the secret without echoing it.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/joshua-simon/gig-fort-v2/internal/auth"
)

func main() {
	var (
		out  = flag.String("out", "auth.secret", "path to write the secret file")
		user = flag.String("user", "admin", "admin username")
	)
	flag.Parse()

	secret, err := promptSecret()
	if err != nil {
		fmt.Fprintf(os.Stderr, "read secret: %v\n", err)
		os.Exit(1)
	}
	if secret == "" {
		fmt.Fprintln(os.Stderr, "secret must not be empty")
		os.Exit(1)
	}

	if err := auth.WriteSecretFile(*out, *user, secret); err != nil {
		fmt.Fprintf(os.Stderr, "write secret file: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s for user %q\n", *out, *user)
}

func promptSecret() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Print("Admin secret: ")
		raw, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(raw)), nil
	}

	// Piped input for scripted setups.
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
