package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/petarpopovic013-oss/barbershop/internal/config"
	dbpkg "github.com/petarpopovic013-oss/barbershop/internal/db"
	"github.com/petarpopovic013-oss/barbershop/internal/logging"
	"github.com/petarpopovic013-oss/barbershop/internal/metrics"
	"github.com/petarpopovic013-oss/barbershop/internal/middleware"
	"github.com/petarpopovic013-oss/barbershop/internal/routes"
)

func main() {

	cfg := config.Load()
	log := logging.New(cfg)

	metrics.Register()

	db, err := dbpkg.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())

	r.LoadHTMLGlob("web/templates/*.html")

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.RegisterRoutes(r, db, cfg, log)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
