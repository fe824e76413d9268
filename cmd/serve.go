package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/cache"
	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/content"
	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/mailer"
	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/search"
	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/store"
	"github.com/sahoojanmejaya-aorbotreks/aorboweb/internal/web"
)

var servePort int

// logTransport stands in for SMTP when no mail host is configured, so local
// runs work without a relay.
type logTransport struct{}

func (logTransport) Send(_ context.Context, email *mailer.Email) error {
	zap.L().Info("mail transport disabled, dropping email",
		zap.String("to", email.To),
		zap.String("subject", email.Subject),
	)
	return nil
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the site HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := store.New(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck
		if err := st.Migrate(ctx); err != nil {
			return err
		}

		c := cache.NewMemory(
			time.Duration(cfg.Cache.DefaultTTLMins)*time.Minute,
			time.Duration(cfg.Cache.CleanupIntervalMins)*time.Minute,
		)

		renderer, err := mailer.NewRenderer()
		if err != nil {
			return err
		}
		var transport mailer.Transport = logTransport{}
		if cfg.Mail.Host != "" {
			transport, err = mailer.NewSMTPTransport(mailer.SMTPConfig{
				Host:     cfg.Mail.Host,
				Port:     cfg.Mail.Port,
				Username: cfg.Mail.Username,
				Password: cfg.Mail.Password,
				From:     cfg.Mail.From,
			})
			if err != nil {
				return err
			}
		}
		dispatcher := mailer.NewDispatcher(
			transport,
			cfg.Mail.QueueSize,
			time.Duration(cfg.Mail.SendTimeoutSecs)*time.Second,
		)
		m := mailer.New(renderer, dispatcher)
		defer m.Close()

		srv := web.NewServer(web.Options{
			Store:          st,
			Content:        content.NewService(st, c),
			Suggester:      search.NewSuggester(st, web.Links{}),
			Resolver:       search.NewResolver(st),
			Mailer:         m,
			Cache:          c,
			SuggestionTTL:  time.Duration(cfg.Search.SuggestionTTLMins) * time.Minute,
			AllowedOrigins: cfg.Server.AllowedOrigins,
			ContactPerMin:  cfg.Server.ContactRatePerMin,
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		httpSrv := &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           srv.Handler(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			zap.L().Info("starting server", zap.Int("port", port))
			if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return eris.Wrap(err, "server listen")
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			zap.L().Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpSrv.Shutdown(shutdownCtx)
		})

		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
