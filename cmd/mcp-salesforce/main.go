package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"

	"github.com/roivaz/mcp-salesforce/internal/config"
	"github.com/roivaz/mcp-salesforce/internal/logging"
	"github.com/roivaz/mcp-salesforce/internal/mcp"
	"github.com/roivaz/mcp-salesforce/internal/salesforce"
)

func main() {
	root := &cobra.Command{
		Use:          "mcp-salesforce",
		Short:        "MCP server exposing Salesforce CRM tools",
		SilenceUsage: true,
		RunE:         run,
	}

	root.PersistentFlags().String("login-url", "", "Salesforce login URL")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("postgres-url", "", "Postgres connection URL for the audit log")
	root.PersistentFlags().String("transport", "", "MCP transport (stdio or http)")
	root.PersistentFlags().String("host", "", "HTTP host")
	root.PersistentFlags().Int("port", 0, "HTTP port")
	root.PersistentFlags().String("endpoint-path", "", "HTTP path of the MCP endpoint")
	root.PersistentFlags().Bool("connect-on-start", true, "Log in to Salesforce before accepting calls")

	root.AddCommand(toolsCmd, statusCmd)
	config.Init(root)

	if err := root.Execute(); err != nil {
		log.Fatalf("command failed: %v", err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := mcp.DefaultConfig(ctx)
	if err != nil {
		return err
	}
	srv := mcp.New(cfg)
	defer srv.Close()

	if config.ConnectOnStart() {
		if err := srv.Connect(ctx); err != nil {
			return err
		}
	}

	switch transport := config.Transport(); transport {
	case "stdio":
		cfg.Logger.Info("MCP Salesforce server running on stdio")
		return srv.ServeStdio(ctx, os.Stdin, os.Stdout)
	case "http":
		return serveHTTP(ctx, srv, cfg.Logger)
	default:
		return fmt.Errorf("unknown transport %q (want stdio or http)", transport)
	}
}

func serveHTTP(ctx context.Context, srv *mcp.Server, logger logging.Logger) error {
	addr := config.Host() + ":" + strconv.Itoa(config.Port())
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("MCP Salesforce server listening", "addr", addr, "endpoint", config.EndpointPath())
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Print the tool catalog as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := yaml.Marshal(mcp.NewRegistry(mcp.Catalog()).List())
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(out)
		return err
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Log in to Salesforce and report the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), config.RequestTimeout())
		defer cancel()

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Salesforce Connection Status:")
		fmt.Fprintln(out, "=============================")
		fmt.Fprintf(out, "Login URL: %s\n", config.LoginURL())
		fmt.Fprintf(out, "Username:  %s\n", config.Username())

		client, err := salesforce.Dial(ctx, salesforce.Config{
			LoginURL:      config.LoginURL(),
			Username:      config.Username(),
			Password:      config.Password(),
			SecurityToken: config.SecurityToken(),
			ClientID:      config.ClientID(),
			ClientSecret:  config.ClientSecret(),
			APIVersion:    config.APIVersion(),
			Timeout:       config.RequestTimeout(),
			Logger:        logging.New(logging.LeveledLogger(config.LogLevel())).WithName("salesforce"),
		})
		if err != nil {
			fmt.Fprintf(out, "Connection failed: %v\n", err)
			return err
		}
		fmt.Fprintf(out, "Instance:  %s\n", client.InstanceURL())
		fmt.Fprintf(out, "User ID:   %s\n", client.UserID())
		fmt.Fprintln(out, "Connection successful")
		return nil
	},
}
