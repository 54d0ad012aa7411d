// Package commands implements the CLI subcommands of logctl, the operator
// tool that queries, exports, and deletes logs over the same engine the
// viewer API uses.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	redisstore "github.com/megagames/logview/internal/adapter/repository/redis"
	"github.com/megagames/logview/internal/adapter/repository/records"
	"github.com/megagames/logview/internal/domain"
	"github.com/megagames/logview/internal/pkg/config"
	"github.com/megagames/logview/internal/usecase"
)

// cliEnv wires the retrieval stack for one command invocation.
type cliEnv struct {
	cfg       *config.Config
	retriever *usecase.RetrieveLogsUseCase
	catalog   *usecase.CatalogUseCase
	records   domain.RecordStore
	close     func()
}

func newCLIEnv() (*cliEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// The CLI logs sparsely to stderr so stdout stays clean for output.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	opts, err := redis.ParseURL(cfg.RedisAddr)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	store := redisstore.NewTreeStore(client, logger)
	gateway := records.NewGateway(store, cfg.StoreBasePath, logger, nil, cfg.FetchChunkSize)
	selector := usecase.NewIndexSelector(cfg.StoreBasePath, cfg.DefaultProject, cfg.MaxFanoutDates)

	return &cliEnv{
		cfg:       cfg,
		retriever: usecase.NewRetrieveLogsUseCase(gateway, selector, logger, nil, cfg.FanoutPerSec, cfg.DefaultLimit),
		catalog:   usecase.NewCatalogUseCase(gateway, cfg.StoreBasePath, cfg.DefaultProject),
		records:   gateway,
		close:     func() { _ = client.Close() },
	}, nil
}

// filterFlags holds the filter options shared by query and export.
type filterFlags struct {
	project     string
	server      string
	platform    string
	date        string
	userID      string
	quickUserID string
	nickname    string
	message     string
	monthsBack  int
	limit       int
	dedupe      string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.project, "project", "", "project to query (defaults to the configured project)")
	cmd.Flags().StringVar(&f.server, "server", "", "server filter")
	cmd.Flags().StringVar(&f.platform, "platform", "", "platform filter")
	cmd.Flags().StringVar(&f.date, "date", "", "date filter (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.userID, "user", "", "exact user id filter")
	cmd.Flags().StringVar(&f.quickUserID, "quick-user", "", "substring match over user ids")
	cmd.Flags().StringVar(&f.nickname, "nickname", "", "substring match over nicknames")
	cmd.Flags().StringVar(&f.message, "message", "", "substring match over messages")
	cmd.Flags().IntVar(&f.monthsBack, "months-back", 3, "months to look back when no date is given (0 = unbounded)")
	cmd.Flags().IntVar(&f.limit, "limit", 200, "max index entries read per index")
	cmd.Flags().StringVar(&f.dedupe, "dedupe", "none", "deduplication mode: none, byMessage, byUserAndMessage")
}

func (f *filterFlags) spec() domain.FilterSpec {
	return domain.FilterSpec{
		Project:     f.project,
		Server:      f.server,
		Platform:    f.platform,
		Date:        f.date,
		UserID:      f.userID,
		QuickUserID: f.quickUserID,
		Nickname:    f.nickname,
		Message:     f.message,
		MonthsBack:  f.monthsBack,
		Limit:       f.limit,
	}
}
