package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"traffic-sim-registration-api-server/config"
	"traffic-sim-registration-api-server/internal/api/routes"
	"traffic-sim-registration-api-server/internal/logging"
	"traffic-sim-registration-api-server/internal/registration"
	"traffic-sim-registration-api-server/internal/s3"
	"traffic-sim-registration-api-server/internal/sink"
	"traffic-sim-registration-api-server/internal/socket"
)

func main() {
	// .env is optional; the environment itself may carry everything.
	godotenv.Load()
	logging.InitLogger(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig("./config")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}

	// The diagnostic log sink is always attached; Mongo and S3 join the
	// fan-out only when configured.
	recordSinks := []sink.RecordSink{sink.NewLogSink(slog.Default())}

	if cfg.Mongo.URI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URI))
		if err != nil {
			cancel()
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		if err := client.Ping(ctx, nil); err != nil {
			cancel()
			log.Fatalf("Failed to ping MongoDB: %v", err)
		}
		cancel()
		defer client.Disconnect(context.Background())
		recordSinks = append(recordSinks, sink.NewMongoSink(client.Database(cfg.Mongo.DBName)))
	}

	if cfg.S3.Bucket != "" {
		uploader, err := s3.NewUploader(cfg.S3)
		if err != nil {
			log.Fatalf("Failed to create S3 uploader: %v", err)
		}
		recordSinks = append(recordSinks, sink.NewS3PictureSink(uploader, slog.Default()))
	}

	wsHub := socket.NewHub()
	notifier := sink.MultiNotifier{wsHub, sink.NewLogNotifier(slog.Default())}
	manager := registration.NewManager()

	router := routes.SetupRouter(cfg, manager, sink.NewGroup(recordSinks...), notifier, wsHub)

	log.Printf("Starting API server on port %s", cfg.Server.Port)
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
