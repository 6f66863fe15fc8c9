package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"Czerny/internal/auth"
	"Czerny/internal/calc/constraints"
	"Czerny/internal/calc/ctdesign"
	"Czerny/internal/calc/layout"
	"Czerny/internal/calc/premium/autodesign"
	"Czerny/internal/calc/premium/batch"
	"Czerny/internal/calc/premium/exporter"
	"Czerny/internal/calc/premium/importer"
	"Czerny/internal/calc/report"
	"Czerny/internal/chart"
	"Czerny/internal/designs"
	"Czerny/internal/repo"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(router *mux.Router, db *sql.DB) {
	store := repo.NewPostgresDB(db)
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file")
	}
	tokenKey := os.Getenv("TOKEN_KEY")
	if tokenKey == "" {
		log.Fatal("TOKEN_KEY environment variable is not set")
	}

	authEnv := &auth.Authenv{JWTkey: []byte(tokenKey), Repo: store}

	limiter := auth.NewIPRateLimiter(1, 3)

	api := router.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/login", authEnv.AuthHandler).Methods("POST")
	api.HandleFunc("/register", authEnv.RegisterHandler).Methods("POST")

	secureApi := api.PathPrefix("/user").Subrouter()
	secureApi.Use(authEnv.AuthMiddleware)

	ctdesignH := &ctdesign.Handler{}
	constraintsH := &constraints.Handler{}
	layoutH := &layout.Handler{}
	chartH := &chart.Handler{}
	reportH := &report.Handler{}
	autodesignH := &autodesign.Handler{}
	batchH := &batch.Handler{}
	importerH := &importer.Handler{}
	exporterH := &exporter.Handler{}
	designsH := &designs.Handler{Repo: store}

	secureApi.HandleFunc("/tools/ctdesign/calc", ctdesignH.Calc).Methods("POST")
	secureApi.HandleFunc("/tools/ctdesign/constraints", constraintsH.Derive).Methods("POST")
	secureApi.HandleFunc("/tools/ctdesign/layout", layoutH.Build).Methods("POST")
	secureApi.HandleFunc("/tools/ctdesign/dispersion", chartH.Dispersion).Methods("POST")
	secureApi.HandleFunc("/tools/ctdesign/report/pdf", reportH.Generate).Methods("POST")

	secureApi.HandleFunc("/tools-premium/ctdesign/autodesign", autodesignH.Grating).Methods("POST")
	secureApi.HandleFunc("/tools-premium/ctdesign/batch", batchH.Designs).Methods("POST")
	secureApi.HandleFunc("/tools-premium/ctdesign/import", importerH.Designs).Methods("POST")
	secureApi.HandleFunc("/tools-premium/ctdesign/export", exporterH.Design).Methods("POST")

	secureApi.HandleFunc("/designs", designsH.Save).Methods("POST")
	secureApi.HandleFunc("/designs", designsH.List).Methods("GET")
	secureApi.HandleFunc("/designs/{id:[0-9]+}", designsH.Get).Methods("GET")
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	db := auth.InitDB()
	defer db.Close()
	router := mux.NewRouter()
	log.Info("Starting server on :443")
	HandleList(router, db)
	handler := CORS(router)

	server := &http.Server{
		Addr:    ":443",
		Handler: handler,
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := server.ListenAndServeTLS("server.crt", "server.key"); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("Server error")
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received, closing active connections")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Fatal("Server shutdown failed")
	}
	log.Info("Server stopped")

	wg.Wait()
}
