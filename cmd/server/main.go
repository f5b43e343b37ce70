package main

import (
	"flag"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/geckostudy/geckoden/internal/app"
	"github.com/geckostudy/geckoden/internal/handlers"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	service, err := app.NewService(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to start service: %v", err)
	}
	defer service.Close()

	studentHandler := handlers.NewStudentHandler(service)
	submissionHandler := handlers.NewSubmissionHandler(service)
	resourceHandler := handlers.NewResourceHandler(service)

	http.HandleFunc("POST /api/v1/login", studentHandler.HandleLogin)
	http.HandleFunc("GET /api/v1/leaderboard", studentHandler.HandleLeaderboard)
	http.HandleFunc("GET /api/v1/students/{username}/progress", studentHandler.HandleProgress)
	http.HandleFunc("POST /api/v1/students/{username}/points", studentHandler.HandleAdjustPoints)
	http.HandleFunc("POST /api/v1/students/{username}/checkin", studentHandler.HandleScheduleCheckIn)
	http.HandleFunc("POST /api/v1/students/{username}/badges", studentHandler.HandleAwardBadge)

	http.HandleFunc("POST /api/v1/submissions", submissionHandler.HandleSubmitStudy)
	http.HandleFunc("GET /api/v1/submissions", submissionHandler.HandleListSubmissions)
	http.HandleFunc("POST /api/v1/submissions/{id}/printed", submissionHandler.HandleSetPrinted)

	http.HandleFunc("GET /api/v1/resources", resourceHandler.HandleListResources)
	http.HandleFunc("POST /api/v1/resources", resourceHandler.HandlePublishResource)

	http.Handle("/metrics", promhttp.Handler())

	logger.Info.Printf("Starting geckoden server on %s", service.Config.Server.Port)
	logger.Debug.Println("Requiring headers:")
	for _, h := range service.Config.API.RequiredHeaders {
		logger.Debug.Printf("  %s: %s", h.Name, h.Value)
	}
	if err := http.ListenAndServe(service.Config.Server.Port, nil); err != nil {
		logger.Error.Fatalf("Geckoden server failed: %v", err)
	}
}
