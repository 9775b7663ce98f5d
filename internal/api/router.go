package api

import (
	"net/http"
	"os"
	"strings"

	"lcoe-calculator/internal/api/handlers"
	"lcoe-calculator/internal/api/middleware"
	"lcoe-calculator/internal/data"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Options configures the HTTP router.
type Options struct {
	ProjectDir     string
	StaticDir      string
	AllowedOrigins []string
	Cache          *data.ResultCache
	Log            *zap.Logger
}

// NewRouter builds the gin engine with middleware and all API routes.
func NewRouter(opts Options) *gin.Engine {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	cache := opts.Cache
	if cache == nil {
		cache = data.NewResultCache(0)
	}

	router := gin.New()
	router.Use(middleware.ErrorHandler(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS(opts.AllowedOrigins))

	presetHandler := handlers.NewPresetHandler(opts.ProjectDir, log)
	lcoeHandler := handlers.NewLCOEHandler(presetHandler, cache, log)
	sensitivityHandler := handlers.NewSensitivityHandler(presetHandler, log)
	parameterHandler := handlers.NewParameterHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "cached_results": cache.Len()})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/lcoe", lcoeHandler.Evaluate)
		v1.GET("/lcoe/:id/cashflows", lcoeHandler.GetCashFlows)

		v1.POST("/sensitivity/sweep", sensitivityHandler.Sweep)
		v1.POST("/sensitivity/discount", sensitivityHandler.DiscountSweep)
		v1.POST("/sensitivity/tornado", sensitivityHandler.Tornado)
		v1.POST("/sensitivity/heatmap", sensitivityHandler.Heatmap)

		v1.GET("/presets", presetHandler.ListPresets)
		v1.GET("/parameters", parameterHandler.ListParameters)
	}

	serveStatic(router, opts.StaticDir, log)
	return router
}

// serveStatic serves a built front-end with SPA fallback, if the directory exists.
func serveStatic(router *gin.Engine, staticDir string, log *zap.Logger) {
	if staticDir == "" {
		return
	}
	if _, err := os.Stat(staticDir); err != nil {
		log.Info("static directory not found, skipping static file serving", zap.String("dir", staticDir))
		return
	}

	router.Static("/assets", staticDir+"/assets")
	router.StaticFile("/favicon.ico", staticDir+"/favicon.ico")

	// Serve index.html for all non-API routes
	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
			return
		}
		c.File(staticDir + "/index.html")
	})
	log.Info("serving static files", zap.String("dir", staticDir))
}
