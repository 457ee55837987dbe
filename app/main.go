package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/app"
	"github.com/Guyuepp/blog-client/internal/config"
	"github.com/Guyuepp/blog-client/internal/gateway"
	"github.com/Guyuepp/blog-client/internal/gateway/memory"
	"github.com/Guyuepp/blog-client/internal/observability"
	"github.com/Guyuepp/blog-client/internal/repository"
	"github.com/Guyuepp/blog-client/internal/rest"
	"github.com/Guyuepp/blog-client/internal/usecase/navigation"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "blog-client",
	Short:        "Headless client for the blog platform",
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd, loginCmd, logoutCmd, searchCmd, readCmd, likeCmd)

	loginCmd.Flags().StringP("username", "u", "", "admin username")
	searchCmd.Flags().StringP("keyword", "k", "", "keyword to search for")
	searchCmd.Flags().Int64P("category", "c", 0, "category id")
	searchCmd.Flags().IntP("page", "p", 1, "page number")
	searchCmd.Flags().Int("page-size", 0, "page size (6, 9, 12 or 20)")
}

// client bundles a started App with the resources it holds.
type client struct {
	cfg   *config.Config
	app   *app.App
	close func()
}

// newClient reads the config, opens the persisted state and the gateway and starts
// the app. The caller must call close.
func newClient(ctx context.Context) (*client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	observability.SetupLogging(cfg.LogLevel, cfg.LogFormat)

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	state := repository.NewClientStateRepository(store)

	var gw domain.Gateway
	if cfg.Offline {
		mem := memory.New(nil, state)
		memory.Seed(mem)
		gw = mem
		logrus.Info("offline mode, using the in-memory gateway")
	} else {
		gw = gateway.NewClient(cfg.APIBaseURL, cfg.APITimeout, state)
	}

	a := app.New(cfg, state, gw)
	if err := a.Start(ctx); err != nil {
		logrus.Warnf("starting with incomplete data: %v", err)
	}
	return &client{cfg: cfg, app: a, close: closeStore}, nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the control API for a renderer",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		c, err := newClient(ctx)
		if err != nil {
			return err
		}
		defer c.close()

		srv := &http.Server{
			Addr:              c.cfg.ControlAddress,
			Handler:           rest.NewRouter(c.app, c.cfg.ContextTimeout),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			logrus.Infof("control API is running on %s", c.cfg.ControlAddress)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logrus.Fatalf("listen: %s", err)
			}
		}()

		<-ctx.Done()
		logrus.Info("Shutdown signal received, stopping server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		logrus.Info("Server exiting")
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the admin console and store the token",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c, err := newClient(ctx)
		if err != nil {
			return err
		}
		defer c.close()

		username, _ := cmd.Flags().GetString("username")
		if username == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Username: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil {
				return fmt.Errorf("read username: %w", err)
			}
			username = strings.TrimSpace(line)
		}
		password, err := readPassword(cmd)
		if err != nil {
			return err
		}

		if !c.app.Login(ctx, domain.Credentials{Username: username, Password: password}) {
			return domain.ErrUnauthorized
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", username)
		return nil
	},
}

// readPassword reads the password without echo when stdin is a terminal.
func readPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(b), nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimSpace(line), nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored token",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		defer c.close()
		c.app.Logout(cmd.Context())
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search published posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c, err := newClient(ctx)
		if err != nil {
			return err
		}
		defer c.close()

		keyword, _ := cmd.Flags().GetString("keyword")
		category, _ := cmd.Flags().GetInt64("category")
		page, _ := cmd.Flags().GetInt("page")
		pageSize, _ := cmd.Flags().GetInt("page-size")

		surface := c.app.PublicSearch
		surface.EditDraft(func(f *domain.PostFilters) {
			f.Keyword = keyword
			f.CategoryID = category
		})
		if err := surface.Apply(ctx); err != nil {
			return err
		}
		if pageSize > 0 {
			if err := surface.SetPageSize(ctx, pageSize); err != nil {
				return err
			}
		}
		if err := surface.SetPage(ctx, page); err != nil {
			return err
		}

		snap := surface.Snapshot()
		out := cmd.OutOrStdout()
		for _, p := range snap.Records {
			fmt.Fprintf(out, "%-6s %-48s views %-5d likes %d\n", p.ID, p.Title, p.ViewCount, p.LikeCount)
		}
		fmt.Fprintf(out, "page %d/%d, %d posts\n", snap.Page, snap.TotalPages, snap.Total)
		return nil
	},
}

var readCmd = &cobra.Command{
	Use:   "read <post-id>",
	Short: "Open a post and record a view",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c, err := newClient(ctx)
		if err != nil {
			return err
		}
		defer c.close()

		post, ok := c.app.Catalog.FindPost(args[0])
		if !ok {
			return domain.ErrNotFound
		}
		c.app.Router.OpenPost(post, domain.ViewHome, navigation.OpenOptions{})
		f := c.app.Render(ctx)
		if f.ActivePost == nil {
			return domain.ErrNotFound
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n\n%s\n\n", f.ActivePost.Title, f.ActivePost.Content)
		fmt.Fprintf(out, "views %d, likes %d, liked %t\n", f.ActivePost.ViewCount, f.ActivePost.LikeCount, f.Liked)
		fmt.Fprintf(out, "share: %s\n", f.ShareURL)
		return nil
	},
}

var likeCmd = &cobra.Command{
	Use:   "like <post-id>",
	Short: "Toggle the like of a post",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		c, err := newClient(ctx)
		if err != nil {
			return err
		}
		defer c.close()

		res, err := c.app.Metrics.ToggleLike(ctx, args[0])
		if err != nil {
			return err
		}
		state := "unliked"
		if res.Liked {
			state = "liked"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s post %s, %d likes\n", state, res.Metric.PostID, res.Metric.LikeCount)
		return nil
	},
}
