// dashctl is a terminal client for the dashboard service: it drives the
// login-and-fetch and refresh flows and writes the rendered activities
// table to an HTML snapshot file.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"golang.org/x/crypto/ssh/terminal"

	"garmin-dashboard/internal/dashboard"
)

func main() {
	serverURL := flag.String("server", "http://localhost:8888", "dashboard service base URL")
	outFile := flag.String("out", "dashboard.html", "file to write the rendered activities table to")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: dashctl [-server URL] [-out FILE] login|refresh\n")
		os.Exit(2)
	}

	ctrl := dashboard.NewController(dashboard.NewClient(strings.TrimRight(*serverURL, "/")))
	ctx := context.Background()

	switch flag.Arg(0) {
	case "login":
		username, password, err := promptCredentials()
		if err != nil {
			log.Fatal("Failed to read credentials: ", err)
		}
		ctrl.HandleLogin(ctx, username, password)
		printStatus("login", ctrl.LoginStatus())
	case "refresh":
		ctrl.HandleRefresh(ctx)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q (want login or refresh)\n", flag.Arg(0))
		os.Exit(2)
	}

	printStatus("data", ctrl.DataStatus())

	if err := writeSnapshot(*outFile, ctrl.Table()); err != nil {
		log.Fatal("Failed to write snapshot: ", err)
	}
	fmt.Printf("Activities table written to %s\n", *outFile)
}

func promptCredentials() (string, string, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Garmin username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return "", "", err
	}

	fmt.Print("Garmin password: ")
	password, err := terminal.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", "", err
	}

	return strings.TrimSpace(username), string(password), nil
}

func printStatus(region string, s dashboard.Status) {
	if s.Text == "" {
		return
	}
	label := "info"
	switch s.Level {
	case dashboard.LevelSuccess:
		label = "ok"
	case dashboard.LevelError:
		label = "error"
	}
	fmt.Printf("[%s] %s: %s\n", label, region, s.Text)
}

func writeSnapshot(path, table string) error {
	page := fmt.Sprintf(`<!DOCTYPE html>
<html><head><meta charset="UTF-8"><title>Activities</title></head>
<body><div id="activities-table">%s</div></body></html>
`, table)
	return os.WriteFile(path, []byte(page), 0644)
}
