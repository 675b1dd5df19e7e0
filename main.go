package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/beka-birhanu/trailgen-api/api"
	api_i "github.com/beka-birhanu/trailgen-api/api/i"
	"github.com/beka-birhanu/trailgen-api/api/identity"
	trailapi "github.com/beka-birhanu/trailgen-api/api/trail"
	"github.com/beka-birhanu/trailgen-api/config"
	"github.com/beka-birhanu/trailgen-api/infrastruture/repo"
	"github.com/beka-birhanu/trailgen-api/infrastruture/sortedstorage"
	"github.com/beka-birhanu/trailgen-api/infrastruture/token"
	"github.com/beka-birhanu/trailgen-api/logging"
	"github.com/beka-birhanu/trailgen-api/service"
	"github.com/beka-birhanu/trailgen-api/service/i"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	mongoClient     *mongo.Client
	redisClient     *goredis.Client
	userRepo        i.UserRepo
	trailRepo       i.TrailRepo
	sortedQueue     i.SortedQueue
	trailGenerator  i.TrailGenerator
	scheduler       *service.Scheduler
	jwtTokenizer    i.Tokenizer
	authService     i.Authenticator
	authController  api_i.Controller
	trailController api_i.Controller
	router          *api.Router
	appLogger       i.Logger
)

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", config.Envs.DBUser, config.Envs.DBPassword, config.Envs.DBHost, config.Envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to MongoDB")
}

func initRedis(ctx context.Context) {
	redisClient = goredis.NewClient(&goredis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Envs.RedisHost, config.Envs.RedisPort),
		Password: config.Envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initRepos(client *mongo.Client) {
	userRepo = repo.NewUserRepo(client, config.Envs.DBName, "users")
	trailRepo = repo.NewTrailRepo(client, config.Envs.DBName, "trails")
	appLogger.Info("Repositories initialized")
}

func initSortedQueue() {
	var err error
	sortedQueue, err = sortedstorage.NewRedisSortedQueue(redisClient, config.Envs.QueueTTLSeconds)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating sorted queue: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Sorted queue initialized")
}

func initGenerator() {
	genLogger, err := logging.New("GENERATOR", config.ColorCyan, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating generator logger: %v", err))
		os.Exit(1)
	}

	trailGenerator, err = service.NewGenerator(&service.GeneratorConfig{
		TrailRepo: trailRepo,
		Logger:    genLogger,
		StepLimit: config.Envs.GenStepLimit,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating generator: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Generator initialized")
}

func initScheduler() {
	schedLogger, err := logging.New("SCHEDULER", config.ColorMagenta, os.Stdout)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating scheduler logger: %v", err))
		os.Exit(1)
	}

	scheduler, err = service.NewScheduler(sortedQueue, schedLogger, &service.SchedulerOptions{
		BatchSize: int64(config.Envs.GenBatchSize),
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating scheduler: %v", err))
		os.Exit(1)
	}

	scheduler.SetGenerateHandler(func(IDs []uuid.UUID) {
		for _, id := range IDs {
			if err := trailGenerator.Generate(context.Background(), id); err != nil {
				appLogger.Error(fmt.Sprintf("Generating trail %s: %v", id, err))
			}
		}
	})
	appLogger.Info("Scheduler initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(userRepo, jwtTokenizer)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating auth service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Auth service initialized")
}

func initControllers() {
	authController = identity.NewIdentityServer(authService)

	var err error
	trailController, err = trailapi.NewTrailController(trailRepo, scheduler, config.Envs.GenMaxGridSize)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating trail controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, trailController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Info("Router initialized")
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel() // Ensure the context is always canceled

	// Initialize dependencies
	appLogger, _ = logging.New("APP", config.ColorGreen, os.Stdout)

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(ctx)
	}()

	initRedis(ctx)
	defer func() {
		_ = redisClient.Close()
	}()

	initRepos(mongoClient)
	initSortedQueue()
	initGenerator()
	initScheduler()
	initJWTTokenizer()
	initAuthService()
	initControllers()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		os.Exit(1)
	}
}
