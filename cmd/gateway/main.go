package main

import (
	"context"
	"log"
	"net/http"
	"time"

	api "github.com/rubricboard/rubricboard/internal/api/http"
	"github.com/rubricboard/rubricboard/internal/auth"
	authmw "github.com/rubricboard/rubricboard/internal/auth/middleware"
	"github.com/rubricboard/rubricboard/internal/config"
	"github.com/rubricboard/rubricboard/internal/db"
	"github.com/rubricboard/rubricboard/internal/rbac"
	"github.com/rubricboard/rubricboard/internal/roster"
	"github.com/rubricboard/rubricboard/internal/rubric"
	syncx "github.com/rubricboard/rubricboard/internal/sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	// --- DB ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbh, err := db.Open(ctx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}

	hub := syncx.NewHub()
	events := syncx.NewEventRepo(dbh)
	rubricStore := rubric.NewSQLStore(dbh, cfg.DBDriver)
	rosterStore := roster.NewSQLStore(dbh, cfg.DBDriver)
	svc := rubric.NewService(rubricStore, rosterStore, hub, events)

	authSvc := authmw.NewAuthService(cfg.AuthSecret)

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Local login (offline/dev by default; online deployments use Google)
	if cfg.EnableLocalAuth {
		r.Post("/auth/login", authmw.LoginHandler(authSvc, dbh))
	}
	if cfg.EnableGoogleAuth {
		r.Get("/auth/google/login", auth.GoogleLoginHandler(cfg))
		r.Get("/auth/google/callback", auth.GoogleCallbackHandler(authSvc, dbh, cfg))
	}

	// Public read-only feedback view (the shared link's target)
	r.With(middleware.Timeout(30 * time.Second)).
		Get("/feedback", api.FeedbackHandler(svc, rosterStore))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(authmw.JWTMiddleware(authSvc))
		pr.Use(middleware.Timeout(30 * time.Second))

		pr.With(rbac.Require("rubric:create")).
			Post("/rubrics", api.CreateRubricHandler(svc))
		pr.With(rbac.Require("rubric:view-own")).
			Get("/rubrics", api.ListRubricsHandler(svc))
		pr.With(rbac.Require("rubric:view-own")).
			Get("/rubrics/{rubricID}", api.GetRubricHandler(svc))
		pr.With(rbac.Require("rubric:save")).
			Put("/rubrics/{rubricID}", api.SaveRubricHandler(svc))
		pr.With(rbac.Require("rubric:delete-own")).
			Delete("/rubrics/{rubricID}", api.DeleteRubricHandler(svc))

		// Category mutation
		pr.With(rbac.Require("rubric:save")).
			Post("/rubrics/{rubricID}/lines", api.AddLineHandler(svc))
		pr.With(rbac.Require("rubric:save")).
			Patch("/rubrics/{rubricID}/lines/{lineID}", api.UpdateLineHandler(svc))
		pr.With(rbac.Require("rubric:save")).
			Delete("/rubrics/{rubricID}/lines/{lineID}", api.RemoveLineHandler(svc))

		// Grading + assignment
		pr.With(rbac.Require("rubric:grade")).
			Post("/rubrics/{rubricID}/grades", api.SelectGradeHandler(svc))
		pr.With(rbac.Require("rubric:grade")).
			Get("/rubrics/{rubricID}/students", api.AssignedStudentsHandler(svc))
		pr.With(rbac.Require("rubric:grade")).
			Post("/rubrics/{rubricID}/students", api.AssignStudentHandler(svc))
		pr.With(rbac.Require("rubric:grade")).
			Delete("/rubrics/{rubricID}/students/{email}", api.UnassignStudentHandler(svc))

		pr.With(rbac.Require("rubric:share")).
			Get("/rubrics/{rubricID}/share", api.ShareLinkHandler(svc, cfg))

		// Roster
		pr.With(rbac.Require("students:list")).
			Get("/students", api.ListStudentsHandler(rosterStore))
		pr.With(rbac.Require("students:import")).
			Post("/students/import", api.ImportStudentsCSVHandler(rosterStore, hub, events))
	})

	// Live feeds: no request timeout, the subscription lives until the
	// screen unmounts.
	r.Group(func(wr chi.Router) {
		wr.Use(authmw.JWTMiddleware(authSvc))
		wr.With(rbac.Require("rubric:view-own")).
			Get("/rubrics/{rubricID}/watch", api.WatchRubricHandler(svc, hub))
		wr.With(rbac.Require("students:list")).
			Get("/students/watch", api.WatchStudentsHandler(rosterStore, hub))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	log.Printf("listening on %s (mode=%s, db=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, r))
}
