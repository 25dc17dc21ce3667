package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anayaorganic/shop-backend/internal/api/router"
	"github.com/anayaorganic/shop-backend/internal/appcontext"
	"github.com/anayaorganic/shop-backend/internal/config"
	"github.com/rs/zerolog"
)

func main() {
	cf := config.GetConfig()

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "shop-backend").Logger()
	if cf.Env == "dev" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	app, err := appcontext.NewApplicationContext(cf, &logger)
	if err != nil {
		log.Fatal(err)
		return
	}

	// 報表 projector 背景消費訂單/活動事件
	projectorCtx, projectorCancel := context.WithCancel(context.Background())
	go func() {
		if err := app.Projector.Run(projectorCtx); err != nil {
			logger.Error().Err(err).Msg("projector stopped")
		}
	}()

	// 設置路由
	r := router.SetupRouter(app.Server, app.TokenMaker, cf.UploadDir, &logger)

	// 設定服務器參數
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cf.ServerPort),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	// 設置訊號監聽
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutDownCompleted := make(chan struct{}, 1)
	// 監聽退出訊號
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}

		projectorCancel()
		app.Shutdown()

		shutDownCompleted <- struct{}{}
	}()

	// 啟動服務
	log.Printf("Server starting on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatal(err)
	}
	<-shutDownCompleted
	log.Printf("closed completed")
}
