package main

import (
	"os"

	"github.com/nwk-labs/network-backend/auth"
	"github.com/nwk-labs/network-backend/feed"
	"github.com/nwk-labs/network-backend/server"
	"github.com/nwk-labs/network-backend/social"
	"github.com/nwk-labs/network-backend/store"
	"github.com/nwk-labs/network-backend/utils"
	"github.com/nwk-labs/network-backend/utils/dotenv"
	. "github.com/nwk-labs/network-backend/utils/flag"
	. "github.com/nwk-labs/network-backend/utils/log"
)

func cleanup() {
	LogV2.Info("network server shutdown")
}

func main() {
	ParseFlags()
	defer cleanup()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		panic("failed to connect to database")
	}
	if err := utils.DatabaseSetupAndMigration(db); err != nil {
		panic(err)
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET must be set")
	}

	stores := store.NewStores(db)
	status := utils.NewRedisStatusStoreFromEnv()
	if status == nil {
		LogV2.Info("REDIS_ADDR not set, like-count cache disabled")
	}

	router := server.NewRouter(server.Deps{
		Stores: stores,
		Auth:   auth.NewService(stores, secret),
		Feed:   feed.NewAssembler(db, stores),
		Graph:  social.NewGraphService(stores),
		Likes:  social.NewLikeService(stores, status),
		Posts:  social.NewPostService(stores, status),
	})

	LogV2.Info("network server starts up")
	router.Run(*ServerAddr)
}
