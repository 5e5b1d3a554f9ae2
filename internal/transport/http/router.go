package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-otp-register/internal/application/otp"
	"github.com/go-otp-register/internal/application/user"
	"github.com/go-otp-register/internal/config"
	"github.com/go-otp-register/internal/transport/http/handler"
	appmiddleware "github.com/go-otp-register/internal/transport/http/middleware"
	"go.uber.org/zap"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(appmiddleware.RequestLogger(log))
	r.Use(appmiddleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	otpSvc := otp.NewService(otp.ServiceDeps{
		Ledger:        deps.OTPRepo,
		Users:         deps.UserRepo,
		Notifier:      deps.Notifier,
		Logger:        log.Named("otp"),
		TTL:           cfg.OTPTTL,
		NotifyTimeout: cfg.NotifyTimeout,
	})
	userSvc := user.NewService(user.ServiceDeps{
		UserRepo: deps.UserRepo,
		OTP:      otpSvc,
		Logger:   log.Named("user"),
	})

	healthH := handler.NewHealthHandler()
	userH := handler.NewUserHandler(userSvc, log.Named("http"))

	r.Get("/health-check/{action}", healthH.Ping)

	r.Route("/api", func(r chi.Router) {
		r.Post("/register", userH.Register)
		r.Post("/verify-otp", userH.VerifyOTP)
		r.Post("/resend-otp", userH.ResendOTP)
		r.Get("/users", userH.List)
	})

	if cfg.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(cfg.StaticDir)))
	}

	return r
}
