package server

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/DiasStein2/NeHazars/internal/config"
	"github.com/DiasStein2/NeHazars/internal/identity"
	"github.com/DiasStein2/NeHazars/internal/store"
)

// Server wires the stats pipeline behind the HTTP boundary. It owns no
// pipeline state: every recompute is a fresh batch run over the export dir.
type Server struct {
	cfg      *config.Config
	store    *store.Store
	resolver *identity.Resolver
}

func New(cfg *config.Config, st *store.Store) *Server {
	return &Server{
		cfg:      cfg,
		store:    st,
		resolver: identity.NewResolver(cfg.Aliases()),
	}
}

// App builds the Fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("request error", "error", err, "status", code, "path", c.Path())
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path}\n",
	}))

	app.Post("/upload", s.handleUpload)
	app.Get("/stats/summary", s.handleSummary)
	app.Get("/stats/activity", s.handleActivity)
	app.Get("/stats/users", s.handleUsers)
	app.Get("/stats/content", s.handleContent)

	if info, err := os.Stat(s.cfg.StaticDir); err == nil && info.IsDir() {
		app.Static("/static", s.cfg.StaticDir)
		app.Get("/", func(c *fiber.Ctx) error {
			index := filepath.Join(s.cfg.StaticDir, "index.html")
			if _, err := os.Stat(index); err != nil {
				return fiber.NewError(fiber.StatusNotFound, "dashboard UI not found")
			}
			return c.SendFile(index)
		})
	}
	if info, err := os.Stat(s.cfg.OutputDir); err == nil && info.IsDir() {
		app.Static("/outputs", s.cfg.OutputDir)
	}

	return app
}

// Listen starts serving on the configured address and blocks.
func (s *Server) Listen() error {
	app := s.App()
	slog.Info("listening", "addr", s.cfg.Addr)
	return app.Listen(s.cfg.Addr)
}
