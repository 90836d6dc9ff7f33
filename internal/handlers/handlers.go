package handlers

import (
	"PartsCatalog/internal/config"
	"PartsCatalog/internal/middleware"
	"PartsCatalog/internal/model"
	"PartsCatalog/internal/service"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	partService *service.PartService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", "Content-Encoding", "Accept-Encoding"},
		MaxAge:         300,
	}))
	r.Use(middleware.WithLogging)

	// Handlers
	userHandler := NewUserHandler(userService, logger, config)
	partHandler := NewPartHandler(partService, logger, config)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.WithGzip)

		// Auth routes
		r.Post("/auth/login", userHandler.Login)
		r.Post("/auth/init-users", userHandler.InitUsers)

		// Catalog routes (без авторизации)
		r.Route("/parts", func(r chi.Router) {
			r.Get("/", partHandler.List)
			r.Post("/", partHandler.Create)
			r.Post("/upload-csv", partHandler.UploadCSV)
			r.Get("/{id}", partHandler.Get)
			r.Put("/{id}", partHandler.Update)
			r.Delete("/{id}", partHandler.Delete)
		})

		// User management (только admin)
		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.WithAuth(config.AuthSecret))
			r.Use(middleware.RequireRole(model.RoleAdmin))
			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
			r.Get("/{id}", userHandler.Get)
			r.Put("/{id}", userHandler.Update)
			r.Delete("/{id}", userHandler.Delete)
		})
	})

	// Загруженные изображения: без gzip, FileServer сам отвечает на HEAD, Range и 304
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(config.UploadDir))))

	return &Handler{Router: r}
}
