package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	httpadp "peerlend-api/internal/adapter/http"
	"peerlend-api/internal/adapter/middleware"
	mysqlrepo "peerlend-api/internal/adapter/repository/mysql"
	redisrepo "peerlend-api/internal/adapter/repository/redis"
	"peerlend-api/internal/config"
	loanDomain "peerlend-api/internal/domain/loan"
	userDomain "peerlend-api/internal/domain/user"
	"peerlend-api/internal/infrastructure/cache"
	"peerlend-api/internal/infrastructure/db"
	authuc "peerlend-api/internal/usecase/auth"
	loanuc "peerlend-api/internal/usecase/loan"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	if err := gdb.AutoMigrate(&userDomain.User{}, &loanDomain.Loan{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	loans := mysqlrepo.NewLoanRepository(gdb)
	users := mysqlrepo.NewUserRepository(gdb)
	sessions := redisrepo.NewSessionStore(rdb)

	authUC := authuc.NewUsecase(users, sessions, cfg.JWTSecret, cfg.TokenTTL())
	loanUC := loanuc.NewUsecase(loans, users)

	h := httpadp.NewHandler()
	authH := httpadp.NewAuthHandler(authUC)
	loanH := httpadp.NewLoanHandler(loanUC)

	authmw := middleware.Auth(authUC)
	idemp := middleware.Idempotency(rdb, cfg.IdempTTL())

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())

	// routes
	e.GET("/health", h.Health)

	e.POST("/register", authH.Register)
	e.POST("/login", authH.Login)
	e.POST("/logout", authH.Logout, authmw)

	// loan reads are public; mutations require the lender's identity
	e.GET("/loans", loanH.List)
	e.GET("/loans/:id", loanH.Get)
	e.POST("/loans", loanH.Create, authmw, idemp)
	e.PATCH("/loans/:id", loanH.Update, authmw)
	e.DELETE("/loans/:id", loanH.Delete, authmw)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
