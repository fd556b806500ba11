// Command imageview hosts the reference optimizer service and exposes the
// URL builder for scripting.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/storekit/imageview/internal/optimizer"
	"github.com/storekit/imageview/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:           "imageview",
	Short:         "Storefront image optimizer toolkit",
	Long:          "imageview builds CDN image-optimization URLs and hosts the\nreference optimizer endpoint they point at.",
	Version:       fmt.Sprintf("%s (%s)", Version, GitCommit),
	SilenceUsage:  true,
	SilenceErrors: true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the optimizer HTTP service",
	RunE:  runServe,
}

var urlCmd = &cobra.Command{
	Use:   "url <src>",
	Short: "Build an optimized URL for a source image",
	Args:  cobra.ExactArgs(1),
	RunE:  runURL,
}

func init() {
	serveCmd.Flags().String("addr", ":8280", "listen address")
	serveCmd.Flags().Duration("fetch-timeout", 15*time.Second, "source image fetch timeout")
	_ = viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr"))
	_ = viper.BindPFlag("fetch_timeout", serveCmd.Flags().Lookup("fetch-timeout"))

	urlCmd.Flags().String("base-url", optimizer.DefaultBaseURL, "optimizer endpoint base URL")
	urlCmd.Flags().Int("quality", 0, "encoding quality (1-100)")
	urlCmd.Flags().Int("width", 0, "target width in pixels")
	urlCmd.Flags().Int("height", 0, "target height in pixels")
	urlCmd.Flags().String("format", "", `output format ("webp" or "jpeg")`)
	_ = viper.BindPFlag("base_url", urlCmd.Flags().Lookup("base-url"))

	viper.SetEnvPrefix("IMAGEVIEW")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(serveCmd, urlCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(log)

	srv := server.New(server.Config{
		Addr:         viper.GetString("addr"),
		FetchTimeout: viper.GetDuration("fetch_timeout"),
	}, log)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("optimizer service: %w", err)
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func runURL(cmd *cobra.Command, args []string) error {
	quality, _ := cmd.Flags().GetInt("quality")
	width, _ := cmd.Flags().GetInt("width")
	height, _ := cmd.Flags().GetInt("height")
	format, _ := cmd.Flags().GetString("format")

	opt := optimizer.New(viper.GetString("base_url"))
	url := opt.BuildURL(args[0], optimizer.Options{
		Quality: quality,
		Width:   width,
		Height:  height,
		Format:  optimizer.Format(format),
	})

	fmt.Fprintln(cmd.OutOrStdout(), url)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
