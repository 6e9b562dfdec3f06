package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-pathviz/api"
	"github.com/beka-birhanu/vinom-pathviz/api/auth"
	api_i "github.com/beka-birhanu/vinom-pathviz/api/i"
	mazeapi "github.com/beka-birhanu/vinom-pathviz/api/maze"
	visualizerapi "github.com/beka-birhanu/vinom-pathviz/api/visualizer"
	"github.com/beka-birhanu/vinom-pathviz/config"
	logger "github.com/beka-birhanu/vinom-pathviz/infrastruture/log"
	"github.com/beka-birhanu/vinom-pathviz/infrastruture/mazecache"
	"github.com/beka-birhanu/vinom-pathviz/infrastruture/mazeclient"
	"github.com/beka-birhanu/vinom-pathviz/infrastruture/repo"
	"github.com/beka-birhanu/vinom-pathviz/infrastruture/token"
	"github.com/beka-birhanu/vinom-pathviz/maze"
	"github.com/beka-birhanu/vinom-pathviz/metrics"
	"github.com/beka-birhanu/vinom-pathviz/service"
	"github.com/beka-birhanu/vinom-pathviz/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	connectTimeout = 10 * time.Second
	reapInterval   = time.Minute
)

// Global variables for dependencies
var (
	mongoClient          *mongo.Client
	redisClient          *redis.Client
	mazeClient           *mazeclient.Client
	appMetrics           *metrics.Metrics
	mazeService          *service.MazeService
	sessionManager       *service.SessionManager
	jwtTokenizer         i.Tokenizer
	mazeController       api_i.Controller
	visualizerController api_i.Controller
	router               *api.Router
	appLogger            i.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newRootCmd creates the pathviz command with its serve and solve subcommands.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pathviz",
		Short: "Step-by-step maze path-finding visualizer",
		Long: `Generates mazes and runs path-finding engines over them one step at a time.

serve exposes visualizer sessions over HTTP, solve runs an engine headless.

Example:
  pathviz serve --addr :8080
  pathviz solve --algorithm aStar --width 20 --height 20 --png out.png`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringP("log-level", "l", config.Envs.LogLevel, "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newServeCmd(), newSolveCmd())
	return rootCmd
}

func newServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the maze and visualizer HTTP API",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
	serveCmd.Flags().StringP("addr", "a", fmt.Sprintf("%s:%d", config.Envs.HostIP, config.Envs.RESTPort), "Address to listen on")
	return serveCmd
}

func initLogger(cmd *cobra.Command) {
	level, err := cmd.Flags().GetString("log-level")
	if err != nil {
		level = config.Envs.LogLevel
	}
	logger.SetLevel(level)
	appLogger = newLogger("APP", config.ColorGreen)
}

func newLogger(prefix, color string) i.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating %s logger: %v\n", prefix, err)
		os.Exit(1)
	}
	return l
}

func initMongo(ctx context.Context) {
	if config.Envs.DBURI == "" {
		appLogger.Info("DB_URI not set, saved mazes are disabled")
		return
	}

	clientOptions := options.Client().ApplyURI(config.Envs.DBURI)
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
	if config.Envs.RedisAddr == "" {
		appLogger.Info("REDIS_ADDR not set, seeded mazes are cached in memory")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
		DB:       config.Envs.RedisDB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis")
}

func initMazeClient() {
	if config.Envs.MazeServiceURL == "" {
		appLogger.Info("MAZE_SERVICE_URL not set, mazes are generated locally")
		return
	}
	mazeClient = mazeclient.New(config.Envs.MazeServiceURL, time.Duration(config.Envs.MazeServiceTimeoutMS)*time.Millisecond)
	appLogger.Info(fmt.Sprintf("Remote maze generation at %s", config.Envs.MazeServiceURL))
}

func initMazeService() {
	c := service.MazeServiceConfig{
		Generator:    maze.Generator(config.Envs.MazeGenerator),
		MaxDimension: config.Envs.MazeMaxDimension,
		Metrics:      appMetrics,
		Logger:       newLogger("MAZE", config.ColorBlue),
	}
	if mazeClient != nil {
		c.Remote = mazeClient
	}
	if redisClient != nil {
		c.Cache = mazecache.NewRedisCache(redisClient, config.Envs.MazeCacheTTLSec)
	} else {
		c.Cache = mazecache.NewMemoryCache(config.Envs.MazeCacheTTLSec)
	}
	if mongoClient != nil {
		c.Repo = repo.NewMazeRepo(mongoClient, config.Envs.DBName, "mazes")
	}

	var err error
	mazeService, err = service.NewMazeService(c)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze service: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Maze service initialized")
}

func initSessionManager() {
	var err error
	sessionManager, err = service.NewSessionManager(&service.SessionManagerConfig{
		Mazes:           mazeService,
		Metrics:         appMetrics,
		Logger:          newLogger("SESSION", config.ColorCyan),
		Interval:        time.Duration(config.Envs.StepIntervalMS) * time.Millisecond,
		StepLimitFactor: config.Envs.StepLimitFactor,
		IdleTimeout:     time.Duration(config.Envs.SessionIdleTimeoutMin) * time.Minute,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating session manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Session manager initialized")
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(config.Envs.JWTSecret, config.Envs.JWTIssuer)
	appLogger.Info("JWT Tokenizer initialized")
}

func initControllers() {
	var err error
	mazeController, err = mazeapi.NewMazeController(mazeService, config.Envs.MazeWidth, config.Envs.MazeHeight)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating maze controller: %v", err))
		os.Exit(1)
	}

	visualizerController, err = visualizerapi.NewVisualizerController(visualizerapi.Config{
		Sessions:      sessionManager,
		Tokenizer:     jwtTokenizer,
		TokenTTL:      time.Duration(config.Envs.SessionTokenTTLMin) * time.Minute,
		DefaultWidth:  config.Envs.MazeWidth,
		DefaultHeight: config.Envs.MazeHeight,
		CellSize:      config.Envs.CellSize,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating visualizer controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Controllers initialized")
}

func initRouter(addr string, t i.Tokenizer) {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:                    addr,
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{mazeController, visualizerController},
		AuthorizationMiddleware: auth.Authorize(t),
		Metrics:                 appMetrics,
	})
	appLogger.Info("Router initialized")
}

func runServe(cmd *cobra.Command, _ []string) error {
	initLogger(cmd)
	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("failed to get addr flag: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	appMetrics = metrics.New()
	initMongo(connectCtx)
	defer func() {
		if mongoClient != nil {
			_ = mongoClient.Disconnect(context.Background())
		}
	}()
	initRedis(connectCtx)
	defer func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()
	initMazeClient()
	defer func() {
		if mazeClient != nil {
			_ = mazeClient.Close()
		}
	}()

	initMazeService()
	initSessionManager()
	sessionManager.StartReaper(reapInterval)
	defer sessionManager.StopAll()
	initJWTTokenizer()
	initControllers()
	initRouter(addr, jwtTokenizer)

	appLogger.Info(fmt.Sprintf("Listening on %s", addr))
	if err := router.Run(ctx); err != nil {
		appLogger.Error(fmt.Sprintf("Running server: %v", err))
		return err
	}
	appLogger.Info("Server stopped")
	return nil
}
