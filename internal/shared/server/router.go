package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	googleauth "property-backend/internal/auth"
	"property-backend/internal/documents"
	"property-backend/internal/ocr"
	"property-backend/internal/properties"
	"property-backend/internal/shared/config"
	"property-backend/internal/shared/metrics"
	"property-backend/internal/shared/server/middleware"
	"property-backend/internal/shared/server/respond"
	"property-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config            config.Config
	PropertiesHandler *properties.Handler
	DocumentsHandler  *documents.Handler
	UsersHandler      *users.Handler
	OCRStatusHandler  *ocr.StatusHandler
	GoogleAuth        *googleauth.GoogleService
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: uploadGroup,
			Rules: map[string]middleware.RateLimitRule{
				"UPLOAD": {Rate: 0.5, Burst: 5},
			},
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UsersHandler != nil {
		deps.UsersHandler.RegisterRoutes(api)
	}
	if deps.OCRStatusHandler != nil {
		deps.OCRStatusHandler.RegisterRoutes(api)
	}
	deps.PropertiesHandler.RegisterRoutes(api)
	deps.DocumentsHandler.RegisterRoutes(api)

	return r
}

// uploadGroup throttles document uploads, which fan out to OCR and are
// far more expensive than the rest of the API.
func uploadGroup(c *gin.Context) string {
	if c.Request.Method == http.MethodPost && strings.HasSuffix(c.Request.URL.Path, "/documents") {
		return "UPLOAD"
	}
	return ""
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
