package router

import (
	"github.com/gin-gonic/gin"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"

	_ "market/docs"
	"market/middleware"
	"market/router/api"
	"market/rpc"
)

func Run(addr string) error {
	r := New()
	return r.Run(addr)
}

// New assembles the marketplace routes, exported separately so tests can
// drive the engine through the HTTP surface
func New() *gin.Engine {
	r := gin.New()
	// Allow cross-domain access, and those with nginx and other proxies can be closed
	r.Use(middleware.Cors())
	// Set up accessible routes
	api.Admin(r)
	api.Project(r)
	api.Sale(r)
	api.Auction(r)
	api.Payment(r)
	api.Event(r)
	rpc.Routers(r)
	r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	return r
}
