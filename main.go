package main

import (
	"log"

	"github.com/fitbook/gym-service/config"
	"github.com/fitbook/gym-service/internal/booking"
	"github.com/fitbook/gym-service/internal/catalog"
	"github.com/fitbook/gym-service/internal/handler"
	"github.com/fitbook/gym-service/internal/ledger"
	"github.com/fitbook/gym-service/internal/middleware"
	"github.com/fitbook/gym-service/internal/store"
	"github.com/fitbook/gym-service/pkg/database"
	"github.com/fitbook/gym-service/pkg/rabbitmq"
	"github.com/fitbook/gym-service/pkg/storeserver"
	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
)

func main() {
	cfg := config.Load()

	storeURL := cfg.StoreURL
	if storeURL == "" {
		// No remote store configured: run the embedded one alongside.
		db := database.Open(cfg.StoreDSN, cfg.StorePath)
		srv, err := storeserver.New(db)
		if err != nil {
			log.Fatalf("failed to init embedded store: %v", err)
		}

		se := echo.New()
		se.HideBanner = true
		srv.RegisterRoutes(se)
		go func() {
			log.Printf("Embedded document store on :%s", cfg.StorePort)
			se.Logger.Fatal(se.Start(":" + cfg.StorePort))
		}()
		storeURL = "http://localhost:" + cfg.StorePort
	}

	st := store.New(storeURL)
	cat := catalog.New(st)
	led := ledger.New(st)

	var publisher booking.EventPublisher
	if cfg.RabbitURL != "" {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL)
		if err != nil {
			log.Fatalf("failed to connect to RabbitMQ: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	engine := booking.NewEngine(st, cat, led, publisher)

	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Use(echoMw.RequestLoggerWithConfig(echoMw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echoMw.RequestLoggerValues) error {
			log.Printf("%s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))
	e.Use(echoMw.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "gym-service"})
	})

	handler.NewAuthHandler(st, cat).RegisterRoutes(e)
	handler.NewScheduleHandler(st, cat, cfg.SchedulePageSize).RegisterRoutes(e)
	handler.NewSessionHandler(st, cat).RegisterRoutes(e)
	handler.NewBookingHandler(engine, cat, st).RegisterRoutes(e)
	handler.NewSubscriptionHandler(st, cat, led).RegisterRoutes(e)
	handler.NewInboxHandler(st, cat).RegisterRoutes(e)

	log.Printf("Gym Service starting on :%s (store: %s)", cfg.ServerPort, storeURL)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
