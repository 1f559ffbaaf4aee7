package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prtrack/internal/auth"
	"prtrack/internal/config"
	httpx "prtrack/internal/http"
	"prtrack/internal/mirror"
	"prtrack/internal/pr"
	"prtrack/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	local := store.NewLocal(cfg.DataFile)
	var st pr.Store = local
	var remote *store.Remote
	if cfg.UseRemote() {
		remote = store.NewRemote(cfg.RemoteURL, local)
		st = remote
	} else if cfg.Seed {
		if err := local.SeedIfEmpty(context.Background(), pr.SeedRecords(time.Now())); err != nil {
			log.Fatal(err)
		}
	}

	svc := &pr.Service{Store: st}

	var jwtSvc *auth.JWT
	if cfg.AuthEnabled() {
		jwtSvc = auth.NewJWT(cfg.JWTSecret)
	}
	r := httpx.NewRouter(cfg, svc, jwtSvc)

	ctx, cancel := context.WithCancel(context.Background())

	// mirror worker
	if remote != nil && cfg.MirrorInterval > 0 {
		w := &mirror.Worker{Remote: remote, Interval: cfg.MirrorInterval}
		go w.Run(ctx)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("listening on %s\n", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal(err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}
