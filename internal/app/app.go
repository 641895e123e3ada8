package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"example.com/longwave/internal/auth"
	"example.com/longwave/internal/config"
	"example.com/longwave/internal/deck"
	"example.com/longwave/internal/game"
	"example.com/longwave/internal/httpapi"
	"example.com/longwave/internal/store"
)

type App struct {
	cfg config.Config
	log *slog.Logger

	db  *pgxpool.Pool
	rdb *redis.Client

	srv *http.Server
}

type Options struct {
	Static http.Handler // optional; if nil, no frontend is served
}

func New(ctx context.Context, cfg config.Config, log *slog.Logger, opts Options) (*App, error) {
	if log == nil {
		log = slog.Default()
	}

	// --- Postgres ---
	dbpool, err := pgxpool.New(ctx, cfg.Postgres.URL)
	if err != nil {
		return nil, fmt.Errorf("pgxpool: %w", err)
	}

	// --- Redis ---
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})

	// Quick connectivity checks (fail fast).
	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := dbpool.Ping(pingCtx); err != nil {
		dbpool.Close()
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		dbpool.Close()
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping (%s db=%d): %w", cfg.Redis.Addr, cfg.Redis.DB, err)
	}

	// --- Auth (guest tokens) ---
	authSvc := auth.NewService([]byte(cfg.Auth.Secret), cfg.Auth.TokenTTL)

	// --- Stores ---
	results := store.NewResultsStore(dbpool)

	// --- Game ---
	persist := game.NewRedisRoomStore(rdb, cfg.Redis.RoomTTL)
	onResult := func(res game.GameResult) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		err := results.Record(ctx, store.GameResult{
			RoomID:      res.RoomID,
			GameType:    int(res.GameType),
			WinningTeam: int(res.WinningTeam),
			LeftScore:   res.LeftScore,
			RightScore:  res.RightScore,
			CoopScore:   res.CoopScore,
			TurnsTaken:  res.TurnsTaken,
			FinishedAt:  res.FinishedAt,
		})
		if err != nil {
			log.Error("archive game result", "room", res.RoomID, "err", err)
		}
	}
	roomSvc := game.NewRoomService(
		game.Config{DefaultDeckLanguage: cfg.Game.DefaultDeckLanguage},
		persist,
		deck.Card,
		onResult,
	)
	gameSrv := game.NewServer(roomSvc, authSvc)

	guestH := &httpapi.GuestHandler{Auth: authSvc}
	roomH := &httpapi.RoomHandler{Rooms: roomSvc, Results: results}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	gameSrv.RegisterRoutes(mux)

	mux.HandleFunc("/api/guest", guestH.Create)
	mux.Handle("/api/rooms", httpapi.AuthMiddleware(authSvc)(http.HandlerFunc(roomH.Create)))
	mux.HandleFunc("/api/rooms/", roomH.History)

	if opts.Static != nil {
		mux.Handle("/", opts.Static)
	}

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           mux,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	return &App{cfg: cfg, log: log, db: dbpool, rdb: rdb, srv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	a.log.Info("http server starting", "addr", a.cfg.HTTP.Addr)

	g.Go(func() error {
		err := a.srv.ListenAndServe()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
		defer cancel()
		a.log.Info("http server shutting down")
		_ = a.srv.Shutdown(shutdownCtx)
		return nil
	})

	err := g.Wait()
	_ = a.Close(context.Background())
	return err
}

func (a *App) Close(ctx context.Context) error {
	// best-effort
	if a.db != nil {
		a.db.Close()
	}
	if a.rdb != nil {
		_ = a.rdb.Close()
	}
	return nil
}
