package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/majeanson/newjo-sub000/config"
	"github.com/majeanson/newjo-sub000/internal/auth"
	"github.com/majeanson/newjo-sub000/internal/game/engine"
	"github.com/majeanson/newjo-sub000/internal/game/room"
	"github.com/majeanson/newjo-sub000/internal/middleware"
	"github.com/majeanson/newjo-sub000/internal/realtime"
	"github.com/majeanson/newjo-sub000/internal/rooms"
	"github.com/majeanson/newjo-sub000/internal/storage"
	"github.com/majeanson/newjo-sub000/internal/utils"
)

const queueEntryTTL = 300 // seconds before an unattended queue entry expires

func main() {
	config.Load()
	ctx := context.Background()

	//-------------------------------------------------------
	// Redis client, shared by storage, lobby and pub/sub.
	//-------------------------------------------------------
	var rdb *redis.Client
	needRedis := config.C.Store.Driver == "redis" || config.C.Redis.Addr != ""
	if needRedis {
		rdb = redis.NewClient(&redis.Options{
			Addr:     config.C.Redis.Addr,
			Password: config.C.Redis.Password,
			DB:       config.C.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			utils.Log.Fatal("redis unreachable", "addr", config.C.Redis.Addr, "err", err)
		}
	}

	//-------------------------------------------------------
	// Game state store, selected by config.
	//-------------------------------------------------------
	var store storage.Store
	switch config.C.Store.Driver {
	case "postgres":
		pg, err := storage.NewPostgres(config.C.Database.DSN)
		if err != nil {
			utils.Log.Fatal("postgres init failed", "err", err)
		}
		store = pg
	case "redis":
		store = storage.NewRedis(rdb, 24*time.Hour)
	case "memory":
		store = storage.NewMemory()
	default:
		utils.Log.Fatal("unknown store driver", "driver", config.C.Store.Driver)
	}

	//-------------------------------------------------------
	// Realtime: websocket hub, SSE broker, cross-node bridge.
	//-------------------------------------------------------
	hub := realtime.NewHub()
	go hub.Run()

	broker := realtime.NewBroker()
	var notifier realtime.Notifier = broker
	if rdb != nil {
		notifier = realtime.MultiNotifier{broker, realtime.NewRedisNotifier(rdb)}
		go realtime.RunBridge(ctx, rdb, broker)
	}

	//-------------------------------------------------------
	// Game orchestration and lobby.
	//-------------------------------------------------------
	games := room.NewService(store, notifier, hub, engine.Options{WinScore: config.C.Game.WinScore})
	hub.OnIncoming = games.HandleIncoming

	var lobbyRepo rooms.Repo
	if rdb != nil {
		lobbyRepo = rooms.NewRedisRepo(rdb)
	} else {
		lobbyRepo = rooms.NewMemoryRepo()
	}
	lobby := rooms.NewService(lobbyRepo, games, hub, queueEntryTTL)

	//-------------------------------------------------------
	// HTTP surface.
	//-------------------------------------------------------
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	secret := []byte(config.C.JWT.Secret)
	r.POST("/auth/login", auth.NewHandler(secret).Login)

	authed := r.Group("/", middleware.JwtAuthMiddleware(secret))
	{
		authed.GET("/ws", realtime.ServeWS(hub))
		authed.GET("/rooms/:id/events", realtime.ServeSSE(broker))
		room.NewHandler(games).Register(authed)
		rooms.NewHandler(lobby).Register(authed)
	}

	utils.Log.Info("server listening", "addr", config.C.Server.Port)
	if err := r.Run(config.C.Server.Port); err != nil {
		utils.Log.Fatal("server stopped", "err", err)
	}
}
