package main

import (
	"log"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/wanderstay/booking-engine/config"
	"github.com/wanderstay/booking-engine/internal/consumer"
	"github.com/wanderstay/booking-engine/internal/handler"
	"github.com/wanderstay/booking-engine/internal/middleware"
	"github.com/wanderstay/booking-engine/internal/pricing"
	"github.com/wanderstay/booking-engine/internal/repository"
	"github.com/wanderstay/booking-engine/internal/service"
	"github.com/wanderstay/booking-engine/pkg/cache"
	"github.com/wanderstay/booking-engine/pkg/database"
	"github.com/wanderstay/booking-engine/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	db := database.NewPostgresDB(cfg.DSN())
	redisClient := cache.NewRedisClient(cfg.RedisAddr)

	// Repositories
	roomTypeRepo := repository.NewRoomTypeRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	calendarRepo := repository.NewCalendarRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Pricing + booking engine
	calculator := pricing.NewCalculator(roomTypeRepo, calendarRepo, cfg.CleaningFee, cfg.ServiceFeePercent)
	bookingSvc := service.NewBookingService(bookingRepo, roomTypeRepo, unitRepo, calendarRepo, calculator)

	// RabbitMQ consumer: payment confirmations from the payment collaborator
	mqConsumer, err := rabbitmq.NewConsumer(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("failed to connect to RabbitMQ: %v", err)
	}
	defer mqConsumer.Close()

	msgs, err := mqConsumer.Consume()
	if err != nil {
		log.Fatalf("failed to start consuming: %v", err)
	}

	paymentConsumer := consumer.NewPaymentConsumer(bookingSvc)
	paymentConsumer.Start(msgs)

	// Echo
	e := echo.New()
	e.HTTPErrorHandler = middleware.ErrorHandler
	e.Validator = handler.NewValidator()
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
		return c.JSON(200, map[string]string{"status": "ok", "service": "booking-engine"})
	})

	handler.NewBookingHandler(bookingSvc).RegisterRoutes(e, middleware.AdminGuard(cfg.AdminToken))
	handler.NewPricingHandler(calculator, unitRepo, redisClient, cfg.QuoteCacheTTL).RegisterRoutes(e)
	handler.NewHostHandler(roomTypeRepo, unitRepo, calendarRepo).RegisterRoutes(e)

	log.Printf("Booking Engine starting on :%s", cfg.ServerPort)
	e.Logger.Fatal(e.Start(":" + cfg.ServerPort))
}
