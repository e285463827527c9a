package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aki/qrlabel/internal/cli/ui"
	"github.com/aki/qrlabel/internal/core/config"
	"github.com/aki/qrlabel/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long:  "Start the Model Context Protocol server so AI agents can allocate and inspect labels",
	RunE:  runMCP,
}

var (
	mcpTransport string
	mcpPort      int
	mcpAuthType  string
	mcpAuthToken string
	mcpAuthUser  string
	mcpAuthPass  string
)

func init() {
	mcpCmd.Flags().StringVarP(&mcpTransport, "transport", "t", "", "Transport type (stdio, http, https)")
	mcpCmd.Flags().IntVarP(&mcpPort, "port", "p", 3000, "Port for HTTP/HTTPS transport")
	mcpCmd.Flags().StringVar(&mcpAuthType, "auth", "", "Authentication type (none, bearer, basic)")
	mcpCmd.Flags().StringVar(&mcpAuthToken, "auth-token", "", "Bearer token for authentication")
	mcpCmd.Flags().StringVar(&mcpAuthUser, "auth-user", "", "Username for basic authentication")
	mcpCmd.Flags().StringVar(&mcpAuthPass, "auth-pass", "", "Password for basic authentication")
	rootCmd.AddCommand(mcpCmd)
}

// mcpHTTPConfig merges the command line with the configured HTTP transport.
// Flags win over the configuration file.
func mcpHTTPConfig(cmd *cobra.Command, cfg *config.Config) (*config.HTTPConfig, error) {
	httpConfig := cfg.MCP.Transport.HTTP
	if httpConfig.Port == 0 || cmd.Flags().Changed("port") {
		httpConfig.Port = mcpPort
	}

	if mcpAuthType != "" {
		httpConfig.Auth = config.AuthConfig{Type: mcpAuthType}
		switch mcpAuthType {
		case "none":
		case "bearer":
			if mcpAuthToken == "" {
				return nil, fmt.Errorf("bearer token required for bearer authentication")
			}
			httpConfig.Auth.Bearer = mcpAuthToken
		case "basic":
			if mcpAuthUser == "" || mcpAuthPass == "" {
				return nil, fmt.Errorf("username and password required for basic authentication")
			}
			httpConfig.Auth.Basic.Username = mcpAuthUser
			httpConfig.Auth.Basic.Password = mcpAuthPass
		default:
			return nil, fmt.Errorf("unsupported authentication type: %s", mcpAuthType)
		}
	}
	return &httpConfig, nil
}

func runMCP(cmd *cobra.Command, args []string) error {
	c, err := createContainer()
	if err != nil {
		return err
	}
	defer c.Close()

	transport := mcpTransport
	if transport == "" {
		transport = c.Config.MCP.Transport.Type
	}
	if transport == "" {
		transport = "stdio"
	}

	var httpConfig *config.HTTPConfig
	switch transport {
	case "stdio":
	case "http", "https":
		httpConfig, err = mcpHTTPConfig(cmd, c.Config)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported transport: %s", transport)
	}

	srv, err := mcp.NewServer(c.Generator, c.Store, transport, httpConfig,
		mcp.WithLogger(c.Logger.With("component", "mcp")),
	)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// stdout belongs to the protocol on stdio
	if transport == "stdio" {
		fmt.Fprintf(os.Stderr, "Starting MCP server with stdio transport\n")
	} else {
		ui.Info("Starting MCP server with %s transport on port %d", transport, httpConfig.Port)
	}

	if err := srv.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("MCP server error: %w", err)
	}

	if transport == "stdio" {
		fmt.Fprintf(os.Stderr, "MCP server stopped\n")
	} else {
		ui.Success("MCP server stopped")
	}
	return nil
}
