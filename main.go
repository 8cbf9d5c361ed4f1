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

	"darklands/admin"
	"darklands/agenda"
	"darklands/catalog"
	"darklands/export"
	"darklands/favorites"
	"darklands/notices"
	"darklands/ratelim"
	"darklands/rdx"
	"darklands/routes"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

// backend picks the favourites storage: Redis when reachable, otherwise
// an in-process store so the app still works, just without durability.
func backend() favorites.Backend {
	if err := rdx.Init(); err != nil {
		log.Printf("Redis unavailable (%v); favourites will not survive restarts", err)
		return rdx.NewMemory()
	}
	return rdx.NewStore(rdx.Conn)
}

func setupRouter(favStore *favorites.Store, hub *notices.Hub, center *notices.Center) *httprouter.Router {
	catalogStore := catalog.New()
	rateLimiter := ratelim.NewRateLimiter()

	router := httprouter.New()
	router.GET("/health", Index)

	routes.AddAuthRoutes(router, rateLimiter)
	routes.AddAgendaRoutes(router, agenda.New(catalogStore, favStore))
	routes.AddFavoriteRoutes(router, favorites.NewHandler(favStore, catalogStore, center))
	routes.AddNoticeRoutes(router, hub, center)
	routes.AddExportRoutes(router, export.NewHandler(catalogStore, favStore))
	routes.AddAdminRoutes(router, admin.NewHandler(catalogStore), rateLimiter)

	return router
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	// read port
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	favStore := favorites.NewStore(backend())

	hub := notices.NewHub()
	go hub.Run()
	center := notices.NewCenter(hub, notices.DismissAfter)

	router := setupRouter(favStore, hub, center)

	// apply middleware: CORS → security headers → logging → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	// on shutdown: stop the toast hub; Push is a no-op once stopped
	server.RegisterOnShutdown(func() {
		log.Println("Shutting down notice hub...")
		hub.Stop()
	})

	go func() {
		log.Printf("Server listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Graceful shutdown failed: %v", err)
	}

	// in-flight requests are done; now drain pending favourite writes
	favStore.Close()

	log.Println("Server stopped cleanly")
}
