package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/nats-io/nats.go"

	"github.com/aditya-b/Twitter-Sentiment-Analysis/internal/adapter/events"
	"github.com/aditya-b/Twitter-Sentiment-Analysis/internal/adapter/storage"
	"github.com/aditya-b/Twitter-Sentiment-Analysis/internal/adapter/twitter"
	"github.com/aditya-b/Twitter-Sentiment-Analysis/internal/config"
	"github.com/aditya-b/Twitter-Sentiment-Analysis/internal/domain/sentiment"
	"github.com/aditya-b/Twitter-Sentiment-Analysis/internal/logging"
	"github.com/aditya-b/Twitter-Sentiment-Analysis/internal/report"
	"github.com/aditya-b/Twitter-Sentiment-Analysis/internal/service/analysis"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables.")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.InitLogger(cfg.Log.Level, cfg.Log.Format)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tags, target, err := promptForInput(os.Stdin)
	if err != nil {
		fatal(logger, "invalid input", err)
	}

	// Establish the data provider session. Failure here aborts the whole
	// run before any tag is attempted.
	fmt.Println("Connecting to twitter...")
	session, err := twitter.NewSession(cfg.Twitter)
	if err != nil {
		fatal(logger, "setup failed, check your credentials", err)
	}
	fmt.Println("Connected! Analyzing tweets... (this might take time based on the number of tweets)")

	scorer, err := analysis.NewVaderScorer()
	if err != nil {
		fatal(logger, "failed to initialize polarity scorer", err)
	}

	fetcher := twitter.NewFetcher(session, cfg.Fetch.Language, clockwork.NewRealClock(), logger)
	classifier := analysis.NewClassifier(scorer)
	aggregator := analysis.NewAggregator(fetcher, classifier, analysis.AggregatorConfig{
		MaxPageSize: cfg.Fetch.PageSize,
	}, logger)

	runID := uuid.New()

	var natsConn *nats.Conn
	if cfg.Events.Enabled {
		natsConn, err = initNATS(cfg.Events, logger)
		if err != nil {
			fatal(logger, "failed to connect to NATS", err)
		}
		defer natsConn.Close()

		aggregator.RegisterProgressSink(events.NewPublisher(natsConn, cfg.Events.Topic, runID.String()))
	}

	result, err := aggregator.Run(ctx, tags, target)
	if err != nil {
		fatal(logger, "analysis failed", err)
	}

	writer := report.NewWriter(cfg.Report.OutputDir)
	paths, err := writer.WriteAll(result)
	if err != nil {
		fatal(logger, "failed to write report artifacts", err)
	}

	if cfg.Archive.Enabled {
		if err := archiveRun(ctx, cfg.Archive, runID, target, result); err != nil {
			fatal(logger, "failed to archive run", err)
		}
		logger.Info("run archived", "runId", runID)
	}

	fmt.Println("Analysis complete. Generated artifacts:")
	for _, path := range paths {
		fmt.Println("  " + path)
	}
}

// promptForInput reads the hashtag list and the per-tag target count
func promptForInput(in *os.File) ([]string, int, error) {
	reader := bufio.NewReader(in)

	fmt.Print("Enter hashtags (separate by comma ',' for multiple hashtags): ")
	line, err := reader.ReadString('\n')
	if err != nil {
		return nil, 0, fmt.Errorf("error reading hashtags: %w", err)
	}

	tags := sentiment.ParseTags(line)
	if len(tags) == 0 {
		return nil, 0, fmt.Errorf("no hashtags provided")
	}

	fmt.Print("Enter maximum number of tweets per hashtag: ")
	line, err = reader.ReadString('\n')
	if err != nil {
		return nil, 0, fmt.Errorf("error reading tweet count: %w", err)
	}

	target, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil || target < 1 {
		return nil, 0, fmt.Errorf("tweet count must be a positive integer")
	}

	return tags, target, nil
}

// archiveRun persists the finalized tallies to the run archive database
func archiveRun(ctx context.Context, cfg config.ArchiveConfig, runID uuid.UUID, target int, result sentiment.RunResult) error {
	db, err := initDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	store := storage.NewRunStore(db)
	return store.SaveRun(ctx, runID, time.Now(), target, result)
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.ArchiveConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

// Initialize NATS connection
func initNATS(cfg config.EventsConfig, logger *slog.Logger) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", "url", nc.ConnectedUrl())
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
