package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/urfave/cli/v3"
)

func healthcheckCmd() *cli.Command {
	return &cli.Command{
		Name:  "healthcheck",
		Usage: "Query a running instance and exit non-zero unless it reports healthy",
		Description: `Intended for container HEALTHCHECK instructions, where no curl is available:

  HEALTHCHECK CMD ["/devops-info-service", "healthcheck"]

Without --url the target is built from HOST and PORT, the same variables the
server binds with. A wildcard bind address (0.0.0.0, ::) is reached over loopback.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "url",
				Usage: "health endpoint to query (default http://$HOST:$PORT/health)",
			},
			&cli.StringFlag{
				Name:    "host",
				Value:   "127.0.0.1",
				Usage:   "host used when --url is not set",
				Sources: cli.EnvVars("HOST"),
			},
			&cli.IntFlag{
				Name:    "port",
				Value:   5000,
				Usage:   "port used when --url is not set",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 3 * time.Second,
				Usage: "overall request timeout",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			target := cmd.String("url")
			if target == "" {
				target = healthURL(cmd.String("host"), int(cmd.Int("port")))
			}
			if err := checkHealth(ctx, target, cmd.Duration("timeout")); err != nil {
				return err
			}
			fmt.Fprintln(cmd.Root().Writer, "healthy")
			return nil
		},
	}
}

// healthURL addresses /health on the bind address. Unspecified addresses
// listen on every interface, so loopback of the same family reaches them.
func healthURL(host string, port int) string {
	switch {
	case host == "":
		host = "127.0.0.1"
	case host == "::" || host == "[::]":
		host = "::1"
	default:
		if ip := net.ParseIP(host); ip != nil && ip.IsUnspecified() {
			host = "127.0.0.1"
		}
	}
	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/health",
	}
	return u.String()
}

// checkHealth succeeds only on a 200 response whose status field is "healthy".
func checkHealth(ctx context.Context, target string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("healthcheck %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("healthcheck %s: unexpected status %d", target, resp.StatusCode)
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decode health response: %w", err)
	}
	if body.Status != "healthy" {
		return fmt.Errorf("healthcheck %s: status %q", target, body.Status)
	}
	return nil
}
