package main

import (
	"context"
	"os"
	"time"

	httpctrl "supply-service/internal/controllers/http"
	"supply-service/internal/domain"
	"supply-service/internal/events"
	mmysql "supply-service/internal/infra/mysql"
	"supply-service/internal/infra/rabbitmq"
	mysqlrepo "supply-service/internal/repository/mysql"
	"supply-service/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const ordersExchange = "orders.exchange"

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Msg("no .env file, using process environment")
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	db, err := mmysql.NewMySQLFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1000)
	sqlDB.SetMaxIdleConns(200)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	repo := mysqlrepo.NewOrderRepository(db)

	bus, err := rabbitmq.NewPublisher(os.Getenv("RABBITMQ_URL"), ordersExchange)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init publisher")
	}
	defer bus.Close()

	publisher := events.NewPublisher(bus)

	s := services.NewOrderService(repo, publisher)

	redisClient := redis.NewClient(&redis.Options{
		Addr:         os.Getenv("REDIS_HOST") + ":6379",
		DB:           0,
		PoolSize:     200,
		MinIdleConns: 20,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
	})

	handler := httpctrl.NewHandler(s, redisClient)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	consumer, err := rabbitmq.NewConsumer(os.Getenv("RABBITMQ_URL"), ordersExchange, "warehouse-group", domain.OrdersTopic)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to init warehouse consumer")
	}
	defer consumer.Close()

	g, ctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		return consumer.Run(ctx)
	})
	g.Go(func() error {
		log.Info().Str("port", port).Msg("starting supply service")
		return r.Run(":" + port)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("service stopped")
	}
}
