package app

import (
	"agile-exchange-backend/internal/auth"
	"agile-exchange-backend/internal/companies"
	"agile-exchange-backend/internal/config"
	"agile-exchange-backend/internal/constants"
	"agile-exchange-backend/internal/database"
	"agile-exchange-backend/internal/health"
	"agile-exchange-backend/internal/investments"
	"agile-exchange-backend/internal/middleware"
	"agile-exchange-backend/internal/sprint"
	"agile-exchange-backend/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with all global middleware and route
// registration. Returns the DB and Redis handles so main can verify
// connections before listening.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
		if cfg.SeedDemoData {
			if err := database.SeedCompanies(db); err != nil {
				return nil, nil, nil, err
			}
		}
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	}

	healthHandlers := &health.Handlers{Rdb: rdb, DB: db}
	app.Get("/health", healthHandlers.JSON)

	// db or rdb may be nil when not configured (e.g. some tests); the API
	// is only mounted with both in place.
	if db == nil || rdb == nil {
		return app, db, rdb, nil
	}

	authHandlers := &auth.Handlers{
		UserFinder: &auth.GormUserFinder{DB: db},
		DB:         db,
		Rdb:        rdb,
	}
	authGroup := app.Group("/api/auth")
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Post("/register", authHandlers.Register)
	authGroup.Get("/me", middleware.RequireAuth(rdb), authHandlers.Me)
	authGroup.Delete("/logout", middleware.RequireAuth(rdb), authHandlers.Logout)

	companyService := &companies.Service{DB: db}
	companyHandlers := &companies.Handlers{Service: companyService}
	companyGroup := app.Group("/api/companies", middleware.RequireAuth(rdb))
	companyGroup.Get("/", middleware.AuthorizePermission(constants.ViewCompanies), companyHandlers.List)
	companyGroup.Post("/", middleware.AuthorizePermission(constants.ManageCompanies), companyHandlers.Create)
	companyGroup.Put("/:id", middleware.AuthorizePermission(constants.ManageCompanies), companyHandlers.Update)
	companyGroup.Delete("/:id", middleware.AuthorizePermission(constants.ManageCompanies), companyHandlers.Delete)

	investmentService := &investments.Service{DB: db, Rdb: rdb}
	investmentHandlers := &investments.Handlers{Service: investmentService}
	investmentGroup := app.Group("/api/investments", middleware.RequireAuth(rdb))
	investmentGroup.Post("/", middleware.AuthorizePermission(constants.Invest), investmentHandlers.Create)
	investmentGroup.Get("/portfolio", middleware.AuthorizePermission(constants.ViewPortfolio), investmentHandlers.Portfolio)
	investmentGroup.Get("/portfolio/chart", middleware.AuthorizePermission(constants.ViewPortfolio), investmentHandlers.Chart)
	investmentGroup.Get("/analytics", middleware.AuthorizePermission(constants.ViewTeamData), investmentHandlers.Analytics)
	investmentGroup.Get("/team-overview", middleware.AuthorizePermission(constants.ViewTeamData), investmentHandlers.TeamOverview)

	userService := &users.Service{DB: db, Rdb: rdb}
	userHandlers := &users.Handlers{Service: userService}
	userGroup := app.Group("/api/users", middleware.RequireAuth(rdb))
	userGroup.Get("/", middleware.AuthorizePermission(constants.ManageUsers), userHandlers.List)
	userGroup.Post("/", middleware.AuthorizePermission(constants.ManageUsers), userHandlers.Create)
	userGroup.Put("/profile", userHandlers.UpdateProfile)
	userGroup.Delete("/:id", middleware.AuthorizePermission(constants.ManageUsers), userHandlers.Remove)

	sprintService := &sprint.Service{DB: db}
	sprintHandlers := &sprint.Handlers{Service: sprintService}
	sprintGroup := app.Group("/api/sprint", middleware.RequireAuth(rdb))
	sprintGroup.Post("/end", middleware.AuthorizePermission(constants.EndSprint), sprintHandlers.End)
	sprintGroup.Get("/history", middleware.AuthorizePermission(constants.ViewTeamData), sprintHandlers.History)

	return app, db, rdb, nil
}
