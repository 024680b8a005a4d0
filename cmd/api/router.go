package main

import (
	"database/sql"
	"net/http"

	"github.com/campuslab/equiptrack/internal/authz"
	"github.com/campuslab/equiptrack/internal/config"
	"github.com/campuslab/equiptrack/internal/handlers"
	"github.com/campuslab/equiptrack/internal/middleware"
	"github.com/campuslab/equiptrack/internal/repo"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func newRouter(database *sql.DB, cfg config.Config) http.Handler {
	users := repo.NewUserRepo(database)
	buildings := repo.NewBuildingRepo(database)
	floors := repo.NewFloorRepo(database)
	rooms := repo.NewRoomRepo(database)
	schedules := repo.NewScheduleRepo(database)
	attendance := repo.NewAttendanceRepo(database)
	tickets := repo.NewTicketRepo(database)
	storage := repo.NewStorageRepo(database)
	deployments := repo.NewDeploymentRepo(database)
	logs := repo.NewLogRepo(database)

	auth := &handlers.AuthHandler{Users: users, Logs: logs, Secret: []byte(cfg.JWTSecret), ExpireHours: cfg.JWTExpireHours}
	buildingH := &handlers.BuildingHandler{Repo: buildings}
	floorH := &handlers.FloorHandler{Repo: floors}
	roomH := &handlers.RoomHandler{Repo: rooms}
	scheduleH := &handlers.ScheduleHandler{Repo: schedules}
	attendanceH := &handlers.AttendanceHandler{Attendance: attendance, Schedules: schedules, Tickets: tickets}
	ticketH := &handlers.TicketHandler{Repo: tickets}
	storageH := &handlers.StorageHandler{Repo: storage}
	deploymentH := &handlers.DeploymentHandler{Repo: deployments, Storage: storage}
	userH := &handlers.UserHandler{Repo: users}
	logH := &handlers.LogHandler{Repo: logs}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.Identity([]byte(cfg.JWTSecret)))
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecurityHeaders(cfg.Env == "prod"))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.Prometheus)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	authLimiter := middleware.AuthRateLimiter()
	submitLimiter := middleware.SubmitRateLimiter()

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))

		r.Route("/auth", func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Use(middleware.Audit(logs, "user"))
			r.Post("/register", auth.Register)
			r.Post("/login", auth.Login)
			r.Post("/logout", auth.Logout)
		})

		r.Route("/buildings", func(r chi.Router) {
			r.Use(middleware.Audit(logs, "building"))
			r.With(middleware.RequireCapability(authz.CapBuildingRead)).Get("/", buildingH.ListBuildings)
			r.With(middleware.RequireCapability(authz.CapBuildingRead)).Get("/{id}", buildingH.GetBuilding)
			r.With(middleware.RequireCapability(authz.CapBuildingCreate)).Post("/", buildingH.CreateBuilding)
			r.With(middleware.RequireCapability(authz.CapBuildingUpdate)).Put("/{id}", buildingH.UpdateBuilding)
			r.With(middleware.RequireCapability(authz.CapBuildingDelete)).Delete("/{id}", buildingH.DeleteBuilding)
		})

		r.Route("/floors", func(r chi.Router) {
			r.Use(middleware.Audit(logs, "floor"))
			r.With(middleware.RequireCapability(authz.CapFloorRead)).Get("/", floorH.ListFloors)
			r.With(middleware.RequireCapability(authz.CapFloorRead)).Get("/{id}", floorH.GetFloor)
			r.With(middleware.RequireCapability(authz.CapFloorCreate)).Post("/", floorH.CreateFloor)
			r.With(middleware.RequireCapability(authz.CapFloorUpdate)).Put("/{id}", floorH.UpdateFloor)
			r.With(middleware.RequireCapability(authz.CapFloorDelete)).Delete("/{id}", floorH.DeleteFloor)
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Use(middleware.Audit(logs, "room"))
			r.With(middleware.RequireCapability(authz.CapRoomRead)).Get("/", roomH.ListRooms)
			r.With(middleware.RequireCapability(authz.CapRoomRead)).Get("/{id}", roomH.GetRoom)
			r.With(middleware.RequireCapability(authz.CapRoomCreate)).Post("/", roomH.CreateRoom)
			r.With(middleware.RequireCapability(authz.CapRoomUpdate)).Put("/{id}", roomH.UpdateRoom)
			r.With(middleware.RequireCapability(authz.CapRoomDelete)).Delete("/{id}", roomH.DeleteRoom)
		})

		r.Route("/schedules", func(r chi.Router) {
			r.Use(middleware.Audit(logs, "schedule"))
			r.With(middleware.RequireCapability(authz.CapScheduleRead)).Get("/", scheduleH.ListSchedules)
			r.With(middleware.RequireCapability(authz.CapScheduleRead)).Get("/{id}", scheduleH.GetSchedule)
			r.With(middleware.RequireCapability(authz.CapScheduleCreate)).Post("/", scheduleH.CreateSchedule)
			r.With(middleware.RequireCapability(authz.CapScheduleUpdate)).Put("/{id}", scheduleH.UpdateSchedule)
			r.With(middleware.RequireCapability(authz.CapScheduleDelete)).Delete("/{id}", scheduleH.DeleteSchedule)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Use(middleware.Audit(logs, "attendance"))
			// Submission stays open to guests; reads need a real account.
			r.With(submitLimiter.Middleware, middleware.RequireCapability(authz.CapAttendanceCreate)).Post("/", attendanceH.Submit)
			r.With(middleware.RequireCapability(authz.CapAttendanceRead)).Get("/", attendanceH.ListAttendance)
		})

		r.Route("/tickets", func(r chi.Router) {
			r.Use(middleware.Audit(logs, "ticket"))
			r.With(middleware.RequireCapability(authz.CapTicketRead)).Get("/", ticketH.ListTickets)
			r.With(middleware.RequireCapability(authz.CapTicketRead)).Get("/{id}", ticketH.GetTicket)
			r.With(middleware.RequireCapability(authz.CapTicketCreate)).Post("/", ticketH.CreateTicket)
			r.With(middleware.RequireCapability(authz.CapTicketUpdate)).Patch("/{id}/status", ticketH.UpdateTicketStatus)
			r.With(middleware.RequireCapability(authz.CapTicketDelete)).Delete("/{id}", ticketH.DeleteTicket)
		})

		r.Route("/storage", func(r chi.Router) {
			r.Use(middleware.Audit(logs, "storage"))
			r.With(middleware.RequireCapability(authz.CapStorageRead)).Get("/", storageH.ListStorage)
			r.With(middleware.RequireCapability(authz.CapStorageRead)).Get("/{id}", storageH.GetStorageItem)
			r.With(middleware.RequireCapability(authz.CapStorageCreate)).Post("/", storageH.CreateStorageItem)
			r.With(middleware.RequireCapability(authz.CapStorageUpdate)).Put("/{id}", storageH.UpdateStorageItem)
			r.With(middleware.RequireCapability(authz.CapStorageDelete)).Delete("/{id}", storageH.DeleteStorageItem)
		})

		r.Route("/deployments", func(r chi.Router) {
			r.Use(middleware.Audit(logs, "deployment"))
			r.With(middleware.RequireCapability(authz.CapDeploymentRead)).Get("/", deploymentH.ListDeployments)
			r.With(middleware.RequireCapability(authz.CapDeploymentRead)).Get("/{id}", deploymentH.GetDeployment)
			r.With(middleware.RequireCapability(authz.CapDeploymentCreate)).Post("/", deploymentH.CreateDeployment)
			r.With(middleware.RequireCapability(authz.CapDeploymentDelete)).Delete("/{id}", deploymentH.DeleteDeployment)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(middleware.Audit(logs, "user"))
			r.Use(middleware.RequireAuth)
			r.With(middleware.RequireCapability(authz.CapUserRead)).Get("/", userH.ListUsers)
			r.With(middleware.RequireCapability(authz.CapUserRead)).Get("/{id}", userH.GetUser)
			r.With(middleware.RequireCapability(authz.CapUserCreate)).Post("/", userH.CreateUser)
			r.With(middleware.RequireCapability(authz.CapUserUpdate)).Put("/{id}", userH.UpdateUser)
			r.With(middleware.RequireCapability(authz.CapUserDelete)).Delete("/{id}", userH.DeleteUser)
		})

		r.Route("/logs", func(r chi.Router) {
			r.Use(middleware.Audit(logs, "log"))
			r.With(middleware.RequireCapability(authz.CapLogRead)).Get("/", logH.ListLogs)
		})
	})

	return r
}
