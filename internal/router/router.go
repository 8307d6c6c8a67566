package router

import (
	"database/sql"
	"net/http"
	"os"

	_ "castador-pro/docs"
	mem "castador-pro/internal/adapters/storage/memory"
	pg "castador-pro/internal/adapters/storage/postgres"
	"castador-pro/internal/domain/birds"
	"castador-pro/internal/domain/breeding"
	"castador-pro/internal/domain/conditioning"
	"castador-pro/internal/domain/dashboard"
	"castador-pro/internal/domain/fights"
	"castador-pro/internal/domain/health"
	"castador-pro/internal/domain/pedigree"
	"castador-pro/internal/middleware"
	"castador-pro/internal/platform/logger"
	"castador-pro/internal/platform/metrics"
	"castador-pro/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.Verifier // puede ser nil (modo dev)

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Log logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewFromEnv()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		birdRepo   birds.Repository
		pairRepo   breeding.PairRepository
		litterRepo breeding.LitterRepository
		condRepo   conditioning.Repository
		fightRepo  fights.Repository
		healthRepo health.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres no disponible, sigo en memoria", map[string]any{"error": err.Error()})
			}
		}
	}

	if db != nil {
		birdRepo = pg.NewBirdsRepo(db)
		pairRepo = pg.NewPairsRepo(db)
		litterRepo = pg.NewLittersRepo(db)
		condRepo = pg.NewConditioningRepo(db)
		fightRepo = pg.NewFightsRepo(db)
		healthRepo = pg.NewHealthRepo(db)
		log.Info("storage: postgres", nil)
	} else {
		birdRepo = mem.NewBirdRepo()
		pairRepo = mem.NewPairRepo()
		litterRepo = mem.NewLitterRepo()
		condRepo = mem.NewConditioningRepo()
		fightRepo = mem.NewFightRepo()
		healthRepo = mem.NewHealthRepo()
		log.Info("storage: memoria", nil)
	}

	// Services por módulo
	birdsSvc := birds.NewService(birdRepo)
	pedigreeSvc := pedigree.NewService(birdsSvc)
	breedingSvc := breeding.NewService(pairRepo, litterRepo, birdsSvc, pedigreeSvc)
	condSvc := conditioning.NewService(condRepo, birdsSvc)
	fightsSvc := fights.NewService(fightRepo, birdsSvc)
	healthSvc := health.NewService(healthRepo, birdsSvc)
	dashSvc := dashboard.NewService(birdsSvc, breedingSvc, fightsSvc, healthSvc)

	// Rutas por módulo
	birds.RegisterRoutes(r, birdsSvc, birds.DeleteDeps{
		Pairs:    breedingSvc,
		Cleanups: []birds.RelatedCleanup{fightsSvc, healthSvc},
	})
	pedigree.RegisterRoutes(r, pedigreeSvc)
	breeding.RegisterRoutes(r, breedingSvc)
	conditioning.RegisterRoutes(r, condSvc)
	fights.RegisterRoutes(r, fightsSvc)
	health.RegisterRoutes(r, healthSvc)
	dashboard.RegisterRoutes(r, dashSvc)

	return r
}
