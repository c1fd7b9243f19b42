package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"traffic-sim-registration-api-server/config"
	"traffic-sim-registration-api-server/internal/api/handlers"
	"traffic-sim-registration-api-server/internal/registration"
	"traffic-sim-registration-api-server/internal/sink"
	"traffic-sim-registration-api-server/internal/socket"
)

// SetupRouter wires the form sessions, the record sink fan-out and the
// notification hub into the route table.
func SetupRouter(
	cfg config.Config,
	manager *registration.Manager,
	records sink.RecordSink,
	notifier sink.Notifier,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(cors.Default())

	formHandler := &handlers.FormHandler{
		Manager:       manager,
		Records:       records,
		Notifier:      notifier,
		SubmitDelay:   time.Duration(cfg.Submission.DelayMS) * time.Millisecond,
		SimulationURL: cfg.Submission.SimulationURL,
	}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, Manager: manager}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)
		apiV1.GET("/options", formHandler.GetOptions)
		apiV1.GET("/simulation", formHandler.LaunchSimulation)

		sessions := apiV1.Group("/sessions")
		{
			sessions.POST("/", formHandler.CreateSession)
			sessions.GET("/:id", formHandler.GetSession)
			sessions.PATCH("/:id/fields", formHandler.UpdateField)
			sessions.PUT("/:id/gender", formHandler.SetGender)
			sessions.POST("/:id/vehicles/:slot/toggle", formHandler.ToggleVehicle)
			sessions.PATCH("/:id/vehicles/:slot", formHandler.UpdateVehicle)
			sessions.POST("/:id/picture", formHandler.UploadPicture)
			sessions.POST("/:id/submit", formHandler.Submit)
			sessions.GET("/:id/record", formHandler.GetRecord)
		}
	}

	return router
}
