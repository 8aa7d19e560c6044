package main // Entry point package

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/smarotkar/trek-booking/internal/config"
	"github.com/smarotkar/trek-booking/internal/handler"
	"github.com/smarotkar/trek-booking/internal/queue"
	"github.com/smarotkar/trek-booking/internal/router"
	"github.com/smarotkar/trek-booking/internal/service"
	"github.com/smarotkar/trek-booking/internal/store"
	"github.com/smarotkar/trek-booking/internal/store/memstore"
	"github.com/smarotkar/trek-booking/internal/store/mongostore"
	"github.com/smarotkar/trek-booking/internal/utils"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win
	cfg := config.Load()

	st := openStore(cfg)
	log.Printf("storage mode: %s", st.Mode())

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; cache and rate limiting disabled")
	}

	// Background consumer writing workflow events to logs/.  Runs its
	// own reconnect loop for the process lifetime.
	go func() {
		if err := queue.StartPublicationConsumer(); err != nil {
			log.Printf("publication consumer stopped: %v", err)
		}
	}()

	pub := service.AMQPPublisher{}
	h := router.Handlers{
		Auth:         handler.NewAuthHandler(cfg, st),
		Event:        handler.NewEventHandler(st, pub),
		EventRequest: handler.NewEventRequestHandler(st, pub),
		Guide:        handler.NewGuideHandler(st),
		GuideRequest: handler.NewGuideRequestHandler(st, pub),
		About:        handler.NewAboutHandler(st),
		Upload:       handler.NewUploadHandler(cfg.UploadDir, st),
	}

	e := echo.New()
	router.Register(e, cfg, st, rdb, h)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// openStore picks the storage backend once for the process lifetime:
// the document store when reachable, otherwise the in-memory mirror
// seeded with the bootstrap admin.  Connect failure is downgraded to a
// log line, never fatal.
func openStore(cfg config.Config) *store.Store {
	db, err := mongostore.Connect(context.Background(), cfg.MongoURI, cfg.MongoDB)
	if err == nil {
		return mongostore.NewStore(db)
	}
	log.Printf("document store unreachable (%v); falling back to in-memory storage", err)

	mem := memstore.New()
	hash, hErr := utils.HashPassword(cfg.AdminPassword, cfg.BcryptCost)
	if hErr != nil {
		log.Printf("seed admin: hash password: %v", hErr)
	} else {
		mem.SeedAdmin(cfg.AdminUsername, hash, cfg.AdminEmail)
	}
	return memstore.NewStore(mem)
}
