package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/VitaminP8/yatube/internal/auth"
	"github.com/VitaminP8/yatube/internal/config"
	"github.com/VitaminP8/yatube/internal/handlers"
	"github.com/VitaminP8/yatube/internal/media"
	"github.com/VitaminP8/yatube/internal/storage/memory"
	"github.com/VitaminP8/yatube/internal/storage/postgres"
	"github.com/spf13/cobra"
)

type serveOptions struct {
	storage string
	addr    string
	groups  []string
}

var serveOpts = &serveOptions{}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Long: `Run the web server.

The memory store starts empty on every run, and "group create" only writes to PostgreSQL.
Pass --group slug=Title (repeatable) to create missing groups at startup in either store.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context(), serveOpts)
	},
}

func init() {
	for _, cmd := range []*cobra.Command{RootCmd, serveCmd} {
		cmd.Flags().StringVar(&serveOpts.storage, "storage", "memory", "Тип хранилища: memory или postgres")
		cmd.Flags().StringVar(&serveOpts.addr, "addr", "", "Адрес сервера (по умолчанию ADDR или :8000)")
		cmd.Flags().StringArrayVar(&serveOpts.groups, "group", nil, "Группа slug=Title, создается при старте, если ее нет")
	}
	RootCmd.AddCommand(serveCmd)
}

func newStores(storageType string, issuer auth.TokenIssuer) (handlers.Stores, error) {
	switch storageType {
	case "postgres":
		if err := postgres.InitDB(); err != nil {
			return handlers.Stores{}, err
		}
		if err := postgres.Migrate(); err != nil {
			return handlers.Stores{}, err
		}

		log.Println("Используется PostgreSQL хранилище")
		return handlers.Stores{
			Users:    postgres.NewUserPostgresStorage(issuer),
			Groups:   postgres.NewGroupPostgresStorage(),
			Posts:    postgres.NewPostPostgresStorage(),
			Comments: postgres.NewCommentPostgresStorage(),
			Follows:  postgres.NewFollowPostgresStorage(),
		}, nil

	case "memory":
		log.Println("Используется in-memory хранилище")
		users := memory.NewUserMemoryStorage(issuer)
		groups := memory.NewGroupMemoryStorage()
		follows := memory.NewFollowMemoryStorage()
		posts := memory.NewPostMemoryStorage(users, groups, follows)
		return handlers.Stores{
			Users:    users,
			Groups:   groups,
			Posts:    posts,
			Comments: memory.NewCommentMemoryStorage(posts, users),
			Follows:  follows,
		}, nil

	default:
		return handlers.Stores{}, fmt.Errorf("неизвестный тип хранилища: %s", storageType)
	}
}

func serve(ctx context.Context, opts *serveOptions) error {
	cfg := config.Load()
	if opts.addr != "" {
		cfg.Addr = opts.addr
	}

	issuer := auth.TokenIssuer{Secret: cfg.JWTSecret, TTL: cfg.SessionTTL}
	stores, err := newStores(opts.storage, issuer)
	if err != nil {
		return err
	}
	if opts.storage == "postgres" {
		defer func() {
			if err := postgres.CloseDB(); err != nil {
				log.Println(err)
			}
		}()
	}

	if err := seedGroups(stores.Groups, opts.groups); err != nil {
		return err
	}

	files, err := media.NewFileSystem(cfg.MediaRoot)
	if err != nil {
		return err
	}

	srv, err := handlers.NewServer(cfg, stores, files)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Сервер запущен на %s\n", cfg.Addr)
		// блокирует, пока не выполнится server.Shutdown() или не произойдет ошибка
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	// Ожидание SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Println("Завершение...")

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	log.Println("Сервер остановлен корректно")
	return nil
}
