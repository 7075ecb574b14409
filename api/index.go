package api

import (
	"net/http"
	"sync"

	"fashion-store/config"
	"fashion-store/routes"

	"github.com/gin-gonic/gin"
)

var (
	router *gin.Engine
	once   sync.Once
)

// initApp builds the engine once per serverless instance. Connections stay
// open for the lifetime of the instance.
func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)

		config.LoadConfig()
		config.ConnectDB()
		config.ConnectRedis()

		router, _ = routes.NewRouter(config.AppConfig, config.DB, config.RedisClient)
	})
}

func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	router.ServeHTTP(w, r)
}
