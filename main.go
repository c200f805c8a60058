package main

import (
	"log"
	"net/http"

	"chat-console/cache"
	"chat-console/chat"
	"chat-console/config"
	"chat-console/db"
	"chat-console/gateway"
	"chat-console/handlers"
	"chat-console/pkg/auth"
	"chat-console/pkg/template"
)

type Services struct {
	DB            *db.Database
	Renderer      *template.Renderer
	Authenticator *auth.Authenticator
	Controller    *chat.Controller
}

func setupServices(cfg *config.Config) (*Services, error) {
	database, err := db.New(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}

	renderer, err := template.NewRenderer("templates")
	if err != nil {
		return nil, err
	}

	redisCache := cache.New(cache.Options{
		Addr:     cfg.RedisAddr(),
		Username: cfg.RedisUsername,
		Password: cfg.RedisPassword,
	})

	client := gateway.NewClient(cfg.ChatAPIURL, cfg.ChatAPIToken)
	cachingClient := gateway.NewCachingClient(client, redisCache)
	controller := chat.NewController(cachingClient, chat.NewStore())

	return &Services{
		DB:            database,
		Renderer:      renderer,
		Authenticator: auth.NewAuthenticator(cfg.JWTSecret),
		Controller:    controller,
	}, nil
}

func main() {
	log.Printf("🚀 Starting console initialization...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	services, err := setupServices(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer services.DB.Close()

	log.Printf("⚙️ Setting up rate limiters...")
	limiter := handlers.NewRateLimiters()

	inbox := handlers.New(services.Controller, services.Renderer)
	authHandler := handlers.NewAuthHandler(services.DB, services.Authenticator, services.Renderer)

	log.Printf("🛣️ Setting up routes...")
	http.HandleFunc("/login", authHandler.Login)
	http.HandleFunc("/logout", authHandler.Logout)

	guard := services.Authenticator.Middleware
	http.HandleFunc("/", guard(limiter.ViewLimit.RateLimit(inbox.Inbox)))
	http.HandleFunc("/conversations", guard(limiter.ViewLimit.RateLimit(inbox.ConversationList)))
	http.HandleFunc("/chat", guard(limiter.ViewLimit.RateLimit(inbox.Chat)))
	http.HandleFunc("/send-message", guard(limiter.MessageLimit.RateLimit(inbox.SendMessage)))
	http.HandleFunc("/state", guard(limiter.ViewLimit.RateLimit(inbox.State)))

	fs := http.FileServer(http.Dir("static"))
	http.Handle("/static/", http.StripPrefix("/static/", fs))

	log.Printf("✅ Console initialization complete")
	log.Printf("🌐 Server starting on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, nil))
}
