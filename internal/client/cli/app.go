package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/reuniteapp/reunite/internal/client/admin"
	"github.com/reuniteapp/reunite/internal/client/api"
	"github.com/reuniteapp/reunite/internal/client/config"
	"github.com/reuniteapp/reunite/internal/client/models"
	"github.com/reuniteapp/reunite/internal/client/notifications"
	"github.com/reuniteapp/reunite/internal/client/reports"
	"github.com/reuniteapp/reunite/internal/client/session"
	"github.com/reuniteapp/reunite/internal/client/storage"
	"github.com/reuniteapp/reunite/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the synchronization layer together and exposes the REPL
// commands. All state lives in the store packages; App only orchestrates.
type App struct {
	config  *config.Config
	log     logging.Logger
	db      *sql.DB
	session *session.Store
	reports *reports.Service
	admin   *admin.Service
	notifs  *notifications.Service
	reader  *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	ctx := context.Background()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	db, err := storage.InitDatabase(ctx, c.CacheDSN)
	if err != nil {
		return nil, err
	}
	repo := storage.NewSQLiteRepository(db)

	apiClient := api.NewHTTPClient(c.APIBaseURL,
		api.WithTimeout(c.RequestTimeout),
		api.WithRateLimit(c.RateLimitRPS, c.RateLimitBurst),
		api.WithRetries(c.Retries),
		api.WithLogger(logger),
	)

	sess := session.NewStore(apiClient, repo, logger)
	apiClient.SetTokenSource(sess)

	return &App{
		config:  c,
		log:     logger,
		db:      db,
		session: sess,
		reports: reports.NewService(apiClient, reports.NewStore(), logger),
		admin:   admin.NewService(apiClient, admin.NewStore(), logger),
		notifs:  notifications.NewService(apiClient, notifications.NewStore(), repo, logger),
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

// Run rehydrates persisted state and enters the REPL. It returns when the
// user exits or stdin is closed.
func (a *App) Run(ctx context.Context) {
	defer a.db.Close()

	a.session.Restore(ctx)
	a.notifs.Restore(ctx)

	printlnFn("Reunite CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.status, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) isAdmin() bool {
	u := a.session.User()
	return u != nil && u.Role == models.RoleAdmin
}

func (a *App) status() string {
	if u := a.session.User(); u != nil && a.session.IsAuthenticated() {
		if unread := a.notifs.Store().UnreadCount(); unread > 0 {
			return fmt.Sprintf("%s (%d unread)", u.Email, unread)
		}
		return u.Email
	}
	return "guest"
}
