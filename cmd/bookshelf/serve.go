package main

import (
	"context"
	"log"
	"time"

	"bookreview/internal/config"
	"bookreview/internal/handler"
	"bookreview/internal/middleware"
	"bookreview/internal/profile"
	"bookreview/internal/render"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the site, regenerating pages on the revalidation interval",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("port", "", "port to listen on (env PORT)")
	serveCmd.Flags().Int("revalidate", 0, "page regeneration interval in seconds (env REVALIDATE_SECONDS)")
	bindFlag(serveCmd, config.KeyPort, "port")
	bindFlag(serveCmd, config.KeyRevalidate, "revalidate")
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Printf("[INFO] Starting bookshelf env=%s revalidate=%s", cfg.Env, cfg.Revalidate)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	src := newSource(cfg)
	h := handler.New(src, render.MustTemplates(), profile.LoadOrDefault(cfg.ProfilePath), cfg.Revalidate)
	go h.Cleanup(context.Background(), time.Minute, 30*time.Minute)

	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeaders())

	allowedOrigins := []string{}
	if gin.Mode() != gin.ReleaseMode {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000")
	}
	allowedOrigins = append(allowedOrigins, cfg.AllowedOrigins...)

	apiCORS := cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Accept-Language"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	})
	ipLimiter := middleware.NewIPRateLimiter(rate.Every(100*time.Millisecond), 20)
	r.Use(middleware.RateLimitMiddleware(ipLimiter))
	log.Printf("[INFO] Rate limiting enabled")

	h.Routes(r, apiCORS)

	log.Printf("[INFO] Server ready port=%s allowed_origins=%v configured=%t", cfg.Port, allowedOrigins, src.Configured())
	return r.Run(":" + cfg.Port)
}
