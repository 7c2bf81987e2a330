package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/config"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/database"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/ddlparser"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/erd"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/handlers"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/middlewares"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/renderer"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/repositories"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/routes"
	"github.com/JANVI-SEMWAL/Automatic-ER-generator/internal/services"
)

// Server owns the HTTP server and the connections it must release on shutdown.
type Server struct {
	*http.Server
	pool *pgxpool.Pool
	rdb  *redis.Client
}

func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	if len(cfg.Security.AccessTokenSecret) == 0 {
		return nil, fmt.Errorf("ACCESS_TOKEN_SECRET environment variable is required")
	}

	if err := database.EnsureDatabaseExists(ctx, cfg.Database); err != nil {
		return nil, err
	}
	pool, err := database.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	s := &Server{pool: pool}

	// Redis is optional; without it logout does not revoke tokens server side.
	var blacklist services.TokenBlacklist
	if cfg.Redis.Addr != "" {
		s.rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := s.rdb.Ping(pingCtx).Err(); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to connect to Redis at %s: %w", cfg.Redis.Addr, err)
		}
		log.Println("Connected to Redis successfully")
		blacklist = repositories.NewRedisRepository(s.rdb)
	}

	// Dependency injection
	userRepo := repositories.NewUserRepository(pool)
	authService := services.NewAuthService(userRepo, blacklist, []byte(cfg.Security.AccessTokenSecret), cfg.Security.AccessTokenTTL)
	convertService := services.NewConvertService(newParser(cfg.Parser))
	renderService := services.NewRenderService(renderer.New(cfg.Renderer.URL, cfg.Renderer.Timeout))

	authHandler := handlers.NewAuthHandler(authService)
	convertHandler := handlers.NewConvertHandler(convertService, renderService)

	s.Server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      NewRouter(cfg, authService, authHandler, convertHandler),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.Renderer.Timeout + 30*time.Second,
	}
	return s, nil
}

// NewRouter builds the gin engine with global middleware and all routes.
func NewRouter(cfg *config.Config, verifier middlewares.TokenVerifier, authHandler *handlers.AuthHandler, convertHandler *handlers.ConvertHandler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), middlewares.Metrics())
	router.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))

	limiter := middlewares.NewRateLimiter(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)
	routes.RegisterRoutes(router, routes.Middleware{
		Authenticate: middlewares.Authenticate(verifier),
		RateLimit:    limiter.Handler(),
	}, authHandler, convertHandler)
	routes.RegisterFrontend(router, cfg.Server.StaticDir)

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	c.ExposeHeaders = []string{"Content-Disposition"}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}

// newParser builds the configured DDL parser. A construction failure is
// logged and leaves the converter without a parser instead of stopping the
// server, so the textual foreign key scan stays usable.
func newParser(cfg config.ParserConfig) erd.Parser {
	p, err := ddlparser.New(ddlparser.Options{
		Driver:       cfg.Driver,
		Strict:       cfg.Strict,
		MySQLVersion: cfg.MySQLVersion,
		Command:      cfg.Command,
		Timeout:      cfg.Timeout,
	})
	if err != nil {
		log.Printf("DDL parser unavailable: %v", err)
		return nil
	}
	log.Printf("Using %q DDL parser", cfg.Driver)
	return p
}

// Close releases the database pool and Redis client.
func (s *Server) Close() {
	if s.rdb != nil {
		if err := s.rdb.Close(); err != nil {
			log.Printf("Redis close: %v", err)
		}
	}
	if s.pool != nil {
		s.pool.Close()
		log.Println("Database connection pool closed")
	}
}
