package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/kintai-app/kintai-backend-go/internal/config"
	appHTTP "github.com/kintai-app/kintai-backend-go/internal/handler/http"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/database"
	"github.com/kintai-app/kintai-backend-go/internal/pkg/jwt"
	"github.com/kintai-app/kintai-backend-go/internal/repository/postgresql"
	attendanceService "github.com/kintai-app/kintai-backend-go/internal/service/attendance"
	correctionService "github.com/kintai-app/kintai-backend-go/internal/service/correction"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}

	loc := cfg.Location()

	dayRepo := postgresql.NewDayRepository(db)
	breakRepo := postgresql.NewBreakRepository(db)
	requestRepo := postgresql.NewRequestRepository(db)
	proposedBreakRepo := postgresql.NewProposedBreakRepository(db)
	txManager := postgresql.NewTxManager(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	attendanceSvc := attendanceService.NewAttendanceService(txManager, dayRepo, breakRepo, requestRepo, loc)
	correctionSvc := correctionService.NewCorrectionService(txManager, dayRepo, breakRepo, requestRepo, proposedBreakRepo, loc)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	correctionHandler := appHTTP.NewCorrectionHandler(correctionSvc)

	router := appHTTP.NewRouter(JWTService, attendanceHandler, correctionHandler)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Listening on", addr)
	if err := http.ListenAndServe(addr, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
