package router

import (
	"net/http"
	"strings"

	"ai-character-chat/backend/internal/api"
	"ai-character-chat/backend/pkg/di"
	"ai-character-chat/backend/pkg/errors"
	"ai-character-chat/backend/pkg/logger"
	"ai-character-chat/backend/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

// Router is the main router for the application
type Router struct {
	Engine    *gin.Engine
	Container *di.Container
	Logger    *logger.Logger
}

// New creates a new router with the given container
func New(container *di.Container) *Router {
	logger.SetGlobal(container.Logger)

	if container.Config.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	engine.Use(logger.Middleware(container.Logger))
	engine.Use(errors.ErrorHandler())
	engine.Use(errors.RecoveryWithLogger())
	engine.Use(middleware.Metrics())

	limiterOpts := middleware.DefaultRateLimiterOptions()
	limiterOpts.Limit = rate.Limit(container.Config.Security.RateLimit)
	limiterOpts.Burst = container.Config.Security.RateLimitBurst
	rateLimiter := middleware.NewRateLimiter(container.Logger, limiterOpts)
	engine.Use(rateLimiter.Middleware())

	return &Router{
		Engine:    engine,
		Container: container,
		Logger:    container.Logger,
	}
}

// SetupRoutes registers all application routes
func (r *Router) SetupRoutes() {
	r.Engine.Use(corsMiddleware(r.Container.Config.Security.AllowedOrigins))

	c := r.Container

	requireIdentity := api.RequireIdentity(c.SessionService)
	optionalIdentity := api.OptionalIdentity(c.SessionService)

	healthHandler := api.NewHealthHandler(c.Health)
	authHandler := api.NewAuthHandler(c.SessionService)
	userHandler := api.NewUserHandler(c.UserService)
	characterHandler := api.NewCharacterHandler(c.CharacterService)
	conversationHandler := api.NewConversationHandler(c.ConversationService, c.MessageService)
	personaHandler := api.NewPersonaHandler(c.PersonaService)
	roomHandler := api.NewRoomHandler(c.RoomService, c.MessageService)
	chatHandler := api.NewChatHandler(c.ChatService)
	providerHandler := api.NewProviderHandler(c.Gateway)

	r.Engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiRoutes := r.Engine.Group("/api")
	{
		apiRoutes.GET("/health", healthHandler.Health)
		apiRoutes.GET("/ai-providers", providerHandler.ListProviders)

		auth := apiRoutes.Group("/auth")
		{
			auth.POST("/callback", authHandler.Callback)
			auth.GET("/me", requireIdentity, authHandler.Me)
			auth.POST("/logout", requireIdentity, authHandler.Logout)
		}

		apiRoutes.POST("/users", userHandler.CreateUser)
		apiRoutes.GET("/users/:id", userHandler.GetUser)

		characters := apiRoutes.Group("/characters")
		{
			characters.POST("", optionalIdentity, characterHandler.CreateCharacter)
			characters.GET("", characterHandler.ListCharacters)
			characters.GET("/:id", characterHandler.GetCharacter)
		}

		// The :id segment names a user on the list route and a
		// conversation everywhere else, preserved from the original API.
		conversations := apiRoutes.Group("/conversations")
		{
			conversations.POST("", optionalIdentity, conversationHandler.CreateConversation)
			conversations.GET("/:id", conversationHandler.ListForUser)
			conversations.GET("/:id/messages", conversationHandler.GetMessages)
			conversations.PUT("/:id/ai-settings", requireIdentity, conversationHandler.UpdateAISettings)
		}

		personas := apiRoutes.Group("/personas", requireIdentity)
		{
			personas.POST("", personaHandler.CreatePersona)
			personas.GET("", personaHandler.ListPersonas)
			personas.GET("/default", personaHandler.GetDefaultPersona)
			personas.GET("/:id", personaHandler.GetPersona)
			personas.PUT("/:id", personaHandler.UpdatePersona)
			personas.DELETE("/:id", personaHandler.DeletePersona)
			personas.POST("/:id/set-default", personaHandler.SetDefaultPersona)
		}

		rooms := apiRoutes.Group("/rooms")
		{
			rooms.POST("", requireIdentity, roomHandler.CreateRoom)
			rooms.GET("", roomHandler.ListRooms)
			rooms.GET("/:id", roomHandler.GetRoom)
			rooms.GET("/:id/messages", roomHandler.GetRoomMessages)
			rooms.POST("/:id/join", requireIdentity, roomHandler.JoinRoom)
			rooms.POST("/:id/leave", requireIdentity, roomHandler.LeaveRoom)
		}

		apiRoutes.POST("/chat", requireIdentity, chatHandler.Chat)
	}

	r.Engine.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Endpoint not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
	})
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		if o == "*" {
			allowAll = true
		}
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if allowAll {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		} else if allowed[origin] {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept, Accept-Encoding, Origin, X-Session-ID, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
