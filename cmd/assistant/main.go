package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	opsapi "bomne-rental-backend/internal/api/http"
	"bomne-rental-backend/internal/assistant"
	"bomne-rental-backend/internal/config"
	"bomne-rental-backend/internal/extractor"
	"bomne-rental-backend/internal/logger"
	"bomne-rental-backend/internal/metrics"
	"bomne-rental-backend/internal/repository/postgres"
	"bomne-rental-backend/internal/service"
	"bomne-rental-backend/internal/utils"
	"bomne-rental-backend/internal/validator"
)

const extractionTimeout = 60 * time.Second

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Logs go to stderr so the chat on stdout stays readable
	logger.InitializeWithWriter(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	logger.Info("Starting BOMNE booking assistant...", "log_level", cfg.Log.Level, "provider", cfg.Assistant.Provider)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	loc := cfg.Assistant.Location()
	now := func() time.Time { return time.Now().In(loc) }
	m := metrics.New()
	validate := validator.New()

	snapshotSvc := service.NewSnapshotService(store.DeviceRepository, store.RentalRepository)
	bookingSvc := service.NewBookingService(store.RentalRepository, validate, m, cfg.Assistant.PhoneRegion, now)
	ledgerSvc := service.NewLedgerService(store.LedgerRepository, store.RentalRepository, cfg.Assistant.PhoneRegion)

	ext, err := extractor.New(ctx, extractor.Config{
		Provider:          cfg.Assistant.Provider,
		Model:             cfg.Assistant.Model,
		APIKey:            cfg.Assistant.APIKey(),
		BaseURL:           cfg.Assistant.BaseURL(),
		Referrer:          cfg.Assistant.OpenRouterReferrer,
		Title:             cfg.Assistant.OpenRouterTitle,
		ShopName:          cfg.Assistant.ShopName,
		RequestsPerMinute: cfg.Assistant.RequestsPerMinute,
		Now:               now,
	}, m)
	if err != nil {
		logger.Error("Failed to initialize extractor", "error", err)
		log.Fatalf("Failed to initialize extractor: %v", err)
	}

	// Ops listener
	if cfg.Metrics.Enabled {
		srv := opsapi.NewOpsServer(cfg.Metrics.Address, opsapi.NewOpsHandler(db), m.Handler())
		go func() {
			logger.Info("Ops server listening", "address", cfg.Metrics.Address)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Ops server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	manager := assistant.NewManager(assistant.Deps{
		Extractor: ext,
		Snapshot:  snapshotSvc,
		Booking:   bookingSvc,
		Metrics:   m,
	})
	defer manager.CloseAll()

	lines := make(chan string)
	go readLines(os.Stdin, lines)

	chat(ctx, manager, ledgerSvc, lines, os.Stdout)
	logger.Info("Booking assistant stopped. Goodbye!")
}

// readLines forwards stdin line by line and closes out at EOF.
func readLines(r io.Reader, out chan<- string) {
	defer close(out)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		out <- scanner.Text()
	}
	if err := scanner.Err(); err != nil {
		logger.Error("Reading input failed", "error", err)
	}
}

// chat runs one console conversation at a time until ctx ends or input closes.
// "/new" starts a fresh session, "/ledger" prints the totals and "/quit" exits.
func chat(ctx context.Context, manager *assistant.Manager, ledgerSvc service.LedgerService, lines <-chan string, w io.Writer) {
	session := manager.Create()
	printTurn(w, assistant.Greeting)

	for {
		fmt.Fprint(w, "> ")
		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(w)
			return
		case l, ok := <-lines:
			if !ok {
				return
			}
			line = strings.TrimSpace(l)
		}

		switch line {
		case "":
			continue
		case "/quit":
			return
		case "/new":
			manager.Close(session.ID())
			session = manager.Create()
			printTurn(w, assistant.Greeting)
			continue
		case "/ledger":
			printLedger(ctx, w, ledgerSvc)
			continue
		}

		turnCtx, cancel := context.WithTimeout(ctx, extractionTimeout)
		reply, err := session.Submit(turnCtx, line)
		cancel()
		if err != nil {
			logger.Warn("Message rejected", "session", session.ID(), "error", err)
			continue
		}
		printTurn(w, reply.Turn.Text)
	}
}

func printTurn(w io.Writer, text string) {
	fmt.Fprintf(w, "AI: %s\n", text)
}

func printLedger(ctx context.Context, w io.Writer, ledgerSvc service.LedgerService) {
	s, err := ledgerSvc.Summary(ctx)
	if err != nil {
		fmt.Fprintf(w, "Lỗi: %v\n", err)
		return
	}
	fmt.Fprintf(w, "Doanh thu: %s | Tổng đơn: %d | Đang thuê: %d | Còn lại: %s\n",
		utils.FormatVND(s.TotalRevenue), s.TotalRentals, s.ActiveRentals, utils.FormatVND(s.RemainingBalance))
}
