// Package main provides the launchpad service that runs all components together:
// - Curve ledger (pool creation, trade recording)
// - Graduation (threshold checks, migration batches, finalization)
// - Event fan-out (ClickHouse event log, WebSocket subscribers)
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"solana-launchpad/internal/auth"
	"solana-launchpad/internal/bank"
	"solana-launchpad/internal/curve"
	"solana-launchpad/internal/dao"
	"solana-launchpad/internal/domain"
	"solana-launchpad/internal/events"
	"solana-launchpad/internal/graduation"
	"solana-launchpad/internal/migration"
	"solana-launchpad/internal/observability"
	"solana-launchpad/internal/params"
	"solana-launchpad/internal/staking"
	"solana-launchpad/internal/storage"
	chstore "solana-launchpad/internal/storage/clickhouse"
	"solana-launchpad/internal/storage/memory"
	"solana-launchpad/internal/storage/migrations"
	pgstore "solana-launchpad/internal/storage/postgres"
	"solana-launchpad/internal/venue"
	venuestub "solana-launchpad/internal/venue/stub"
)

// Server holds all components of the launchpad service.
type Server struct {
	// Components
	adminCap *auth.AdminCap
	params   *params.Set
	ledger   *curve.Ledger
	stores   *allStores
	runner   *migration.Runner
	hub      *events.Hub
	metrics  *observability.Metrics
	logger   *log.Logger

	// State
	mu      sync.Mutex
	started time.Time
	pools   int
	trades  int
}

// allStores holds all storage implementations.
type allStores struct {
	registryStore storage.RegistryStore
	receiptStore  storage.ReceiptStore
	eventStore    storage.GraduationEventStore
}

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	listenAddr := flag.String("listen-addr", envOr("LISTEN_ADDR", ":8080"), "HTTP listen address")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of PostgreSQL/ClickHouse")
	platformTreasury := flag.String("platform-treasury", os.Getenv("PLATFORM_TREASURY"), "Platform treasury address (base58)")
	daoTreasury := flag.String("dao-treasury", os.Getenv("DAO_TREASURY"), "DAO treasury address (base58)")
	ammVenue := flag.String("amm-venue", os.Getenv("AMM_VENUE_ADDRESS"), "AMM venue program address (base58)")
	clmmVenue := flag.String("clmm-venue", os.Getenv("CLMM_VENUE_ADDRESS"), "CLMM venue program address (base58)")
	threshold := flag.Uint64("graduation-threshold", 69_000_000_000, "Base reserve required to graduate, in lamports")
	minBase := flag.Uint64("venue-min-base", 1_000_000, "Minimum base liquidity a venue accepts, in lamports")
	minTokens := flag.Uint64("venue-min-tokens", 1_000_000, "Minimum token liquidity a venue accepts")
	feeTierBps := flag.Uint("venue-fee-tier-bps", 30, "Venue pool fee tier in basis points")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	// Validate required flags
	if *platformTreasury == "" {
		logger.Fatal("--platform-treasury is required")
	}
	if *daoTreasury == "" {
		logger.Fatal("--dao-treasury is required")
	}
	if !*useMemory && (*postgresDSN == "" || *clickhouseDSN == "") {
		logger.Fatal("--postgres-dsn and --clickhouse-dsn are required (use --use-memory for in-memory storage)")
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create stores
	stores, cleanup, err := createStores(ctx, *postgresDSN, *clickhouseDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	// Admin capability held by the operator process
	adminCap, err := auth.NewAdminCap()
	if err != nil {
		logger.Fatalf("Failed to create admin capability: %v", err)
	}
	logger.Printf("Admin capability ID: %s", adminCap.ID())

	// Parameter set
	paramSet, err := params.NewSet(adminCap, domain.Address(*platformTreasury), domain.Address(*daoTreasury))
	if err != nil {
		logger.Fatalf("Failed to create parameter set: %v", err)
	}
	if err := paramSet.SetGraduationThreshold(adminCap, *threshold); err != nil {
		logger.Fatalf("Failed to set graduation threshold: %v", err)
	}
	if *ammVenue != "" {
		if err := paramSet.ConfigureVenueAddress(adminCap, domain.VenueAMM, domain.Address(*ammVenue)); err != nil {
			logger.Fatalf("Failed to configure AMM venue: %v", err)
		}
	}
	if *clmmVenue != "" {
		if err := paramSet.ConfigureVenueAddress(adminCap, domain.VenueCLMM, domain.Address(*clmmVenue)); err != nil {
			logger.Fatalf("Failed to configure CLMM venue: %v", err)
		}
	}

	metrics := observability.NewMetrics("")

	// WebSocket hub plus durable event log
	hubConfig := events.DefaultHubConfig()
	hubConfig.Subscribers = metrics.EventSubscribers
	hub := events.NewHub(hubConfig, log.New(os.Stdout, "[events] ", log.LstdFlags))
	defer hub.Close()
	sink := events.MeteredSink{
		Sink:      events.MultiSink{events.NewStoreSink(stores.eventStore), hub},
		Published: metrics.EventsPublished,
	}

	ledger := curve.NewLedger()
	book := bank.NewBook()
	coordinator := graduation.NewCoordinator(adminCap, ledger, book, paramSet)
	finalizer := graduation.NewFinalizer(stores.registryStore, stores.receiptStore, sink)

	runner := migration.New(migration.Options{
		AdminCap:    adminCap,
		Ledger:      ledger,
		Book:        book,
		Params:      paramSet,
		Coordinator: coordinator,
		Finalizer:   finalizer,
		AMMAdapter:  venue.NewAMMAdapter(venuestub.NewAMMVenue(), *minBase, *minTokens, uint16(*feeTierBps)),
		CLMMAdapter: venue.NewCLMMAdapter(venuestub.NewCLMMVenue(), *minBase, *minTokens, uint16(*feeTierBps)),
		Staking:     staking.NewStubCreator(),
		DAO:         dao.NewStubCreator(),
		Metrics:     metrics,
	})

	server := &Server{
		adminCap: adminCap,
		params:   paramSet,
		ledger:   ledger,
		stores:   stores,
		runner:   runner,
		hub:      hub,
		metrics:  metrics,
		logger:   logger,
		started:  time.Now(),
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)
		cancel()
	}()

	if err := server.serveHTTP(ctx, *listenAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("HTTP server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores creates all required stores.
func createStores(ctx context.Context, postgresDSN, clickhouseDSN string, useMemory bool) (*allStores, func(), error) {
	if useMemory {
		stores := &allStores{
			registryStore: memory.NewRegistryStore(),
			receiptStore:  memory.NewReceiptStore(),
			eventStore:    memory.NewGraduationEventStore(),
		}
		return stores, func() {}, nil
	}

	// PostgreSQL
	pool, err := pgstore.NewPool(ctx, postgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run postgres migrations: %w", err)
	}

	// ClickHouse
	chConn, err := migrations.RunClickhouseMigrations(ctx, clickhouseDSN)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("run clickhouse migrations: %w", err)
	}

	stores := &allStores{
		registryStore: pgstore.NewRegistryStore(pool),
		receiptStore:  pgstore.NewReceiptStore(pool),
		eventStore:    chstore.NewGraduationEventStore(chConn),
	}

	cleanup := func() {
		chConn.Close()
		pool.Close()
	}

	return stores, cleanup, nil
}

// serveHTTP runs the HTTP API until the context is cancelled.
func (s *Server) serveHTTP(ctx context.Context, addr string) error {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /pools", s.handleCreatePool)
	mux.HandleFunc("POST /trades", s.handleRecordTrade)
	mux.HandleFunc("POST /graduate", s.handleGraduate)
	mux.HandleFunc("GET /pools/{id}", s.handleGetPool)
	mux.HandleFunc("GET /receipts/{poolID}", s.handleGetReceipt)
	mux.HandleFunc("GET /graduations", s.handleGraduations)
	mux.HandleFunc("GET /counters", s.handleCounters)
	mux.HandleFunc("GET /status", s.handleStatus)

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// Prometheus metrics
	mux.Handle("/metrics", observability.Handler())

	// WebSocket event stream
	mux.HandleFunc("/ws", s.hub.ServeWS)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	s.logger.Printf("Listening on %s", addr)
	return srv.ListenAndServe()
}

// CreatePoolRequest is the JSON body for POST /pools.
type CreatePoolRequest struct {
	Mint         string `json:"mint"`
	Creator      string `json:"creator"`
	TokenReserve uint64 `json:"token_reserve"`
	TradeFeeBps  uint16 `json:"trade_fee_bps"`
}

// handleCreatePool creates a curve pool and registers it.
func (s *Server) handleCreatePool(w http.ResponseWriter, r *http.Request) {
	var req CreatePoolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	mint := domain.Address(req.Mint)
	creator := domain.Address(req.Creator)
	if err := mint.Validate(); err != nil {
		httpError(w, http.StatusBadRequest, fmt.Errorf("mint: %w", err))
		return
	}
	if err := creator.Validate(); err != nil {
		httpError(w, http.StatusBadRequest, fmt.Errorf("creator: %w", err))
		return
	}

	nowMs := time.Now().UnixMilli()
	poolID, err := s.ledger.CreatePool(mint, creator, req.TokenReserve, req.TradeFeeBps, nowMs)
	if err != nil {
		httpError(w, statusFor(err), err)
		return
	}

	entry := &domain.RegistryEntry{
		PoolID:       poolID,
		Mint:         mint,
		Creator:      creator,
		RegisteredAt: nowMs,
	}
	if err := s.stores.registryStore.Insert(r.Context(), entry); err != nil {
		httpError(w, statusFor(err), err)
		return
	}

	s.metrics.PoolsCreated.Inc()
	s.mu.Lock()
	s.pools++
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]string{"pool_id": poolID})
}

// RecordTradeRequest is the JSON body for POST /trades.
type RecordTradeRequest struct {
	PoolID      string `json:"pool_id"`
	Side        string `json:"side"` // "buy" or "sell"
	BaseAmount  uint64 `json:"base_amount"`
	TokenAmount uint64 `json:"token_amount"`
}

// handleRecordTrade records a buy or sell against the curve ledger.
func (s *Server) handleRecordTrade(w http.ResponseWriter, r *http.Request) {
	var req RecordTradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	var err error
	switch strings.ToLower(req.Side) {
	case "buy":
		err = s.ledger.RecordBuy(req.PoolID, req.BaseAmount, req.TokenAmount)
	case "sell":
		err = s.ledger.RecordSell(req.PoolID, req.TokenAmount, req.BaseAmount)
	default:
		httpError(w, http.StatusBadRequest, fmt.Errorf("unknown side %q", req.Side))
		return
	}
	if err != nil {
		httpError(w, statusFor(err), err)
		return
	}

	s.metrics.TradesRecorded.Inc()
	s.mu.Lock()
	s.trades++
	s.mu.Unlock()

	baseReserve, tokenReserve, _, err := s.ledger.Balances(req.PoolID)
	if err != nil {
		httpError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint64{
		"base_reserve":  baseReserve,
		"token_reserve": tokenReserve,
	})
}

// GraduateRequest is the JSON body for POST /graduate.
type GraduateRequest struct {
	PoolID string `json:"pool_id"`
}

// handleGraduate runs a full migration batch for a pool.
func (s *Server) handleGraduate(w http.ResponseWriter, r *http.Request) {
	var req GraduateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, fmt.Errorf("decode request: %w", err))
		return
	}

	result, err := s.runner.Run(r.Context(), req.PoolID)
	if err != nil {
		s.logger.Printf("Migration failed for %s: %v", req.PoolID, err)
		httpError(w, statusFor(err), err)
		return
	}

	s.logger.Printf("Pool %s graduated to %s", req.PoolID, result.VenuePoolID)
	writeJSON(w, http.StatusOK, result)
}

// handleGetPool returns the registry entry and live curve balances for a pool.
func (s *Server) handleGetPool(w http.ResponseWriter, r *http.Request) {
	poolID := r.PathValue("id")

	entry, err := s.stores.registryStore.GetByPoolID(r.Context(), poolID)
	if err != nil {
		httpError(w, statusFor(err), err)
		return
	}

	resp := map[string]any{"entry": entry}
	if snap, err := s.ledger.Snapshot(poolID); err == nil {
		resp["curve"] = snap
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleGetReceipt returns the graduation receipt for a pool.
func (s *Server) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	receipt, err := s.stores.receiptStore.GetByPoolID(r.Context(), r.PathValue("poolID"))
	if err != nil {
		httpError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}

// handleGraduations returns all finalized registry entries.
func (s *Server) handleGraduations(w http.ResponseWriter, r *http.Request) {
	entries, err := s.stores.registryStore.GetGraduated(r.Context())
	if err != nil {
		httpError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// handleCounters returns the registry-wide aggregate counters.
func (s *Server) handleCounters(w http.ResponseWriter, r *http.Request) {
	counters, err := s.stores.registryStore.Counters(r.Context())
	if err != nil {
		httpError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, counters)
}

// StatusResponse is the JSON response for /status endpoint.
type StatusResponse struct {
	Status        string `json:"status"`
	Uptime        string `json:"uptime"`
	PoolsCreated  int    `json:"pools_created"`
	TradesServed  int    `json:"trades_served"`
	Subscribers   int    `json:"ws_subscribers"`
	VenueDefault  string `json:"venue_default"`
	ParamsVersion uint64 `json:"params_version"`
}

// handleStatus returns server status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	pools, trades := s.pools, s.trades
	s.mu.Unlock()

	resp := StatusResponse{
		Status:        "running",
		Uptime:        time.Since(s.started).String(),
		PoolsCreated:  pools,
		TradesServed:  trades,
		Subscribers:   s.hub.SubscriberCount(),
		VenueDefault:  string(s.params.VenueID()),
		ParamsVersion: s.params.Version(),
	}
	writeJSON(w, http.StatusOK, resp)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound), errors.Is(err, curve.ErrPoolNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrDuplicateKey), errors.Is(err, curve.ErrPoolExists),
		errors.Is(err, curve.ErrAlreadyGraduated), errors.Is(err, storage.ErrAlreadyFinalized):
		return http.StatusConflict
	case errors.Is(err, graduation.ErrNotReady), errors.Is(err, graduation.ErrInsufficientLiquidity),
		errors.Is(err, curve.ErrPoolPaused), errors.Is(err, venue.ErrBelowMinimumLiquidity),
		errors.Is(err, venue.ErrVenueNotConfigured), errors.Is(err, curve.ErrReserveUnderflow),
		errors.Is(err, curve.ErrReserveOverflow):
		return http.StatusUnprocessableEntity
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, storage.ErrInvalidInput), errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, curve.ErrInvalidFeeBps):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func httpError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// envOr returns the env var value or a fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
