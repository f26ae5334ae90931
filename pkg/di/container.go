package di

import (
	"ai-character-chat/backend/internal/ai"
	"ai-character-chat/backend/internal/service"
	"ai-character-chat/backend/pkg/cache"
	"ai-character-chat/backend/pkg/config"
	"ai-character-chat/backend/pkg/health"
	"ai-character-chat/backend/pkg/logger"
	"ai-character-chat/backend/pkg/secrets"
	"ai-character-chat/backend/shared/redis"

	"gorm.io/gorm"
)

// Container wires all application dependencies at startup. Every
// component receives its collaborators explicitly; nothing reads global
// state after construction.
type Container struct {
	Config *config.Config
	Logger *logger.Logger
	DB     *gorm.DB
	Redis  *redis.Client
	Cache  *cache.Cache

	Secrets secrets.Manager
	Gateway ai.Gateway
	Health  *health.Checker

	UserService         *service.UserService
	SessionService      *service.SessionService
	CharacterService    *service.CharacterService
	PersonaService      *service.PersonaService
	ConversationService *service.ConversationService
	RoomService         *service.RoomService
	MessageService      *service.MessageService
	ChatService         *service.ChatService
}

// New builds the full dependency graph from configuration.
func New(cfg *config.Config, log *logger.Logger) (*Container, error) {
	db, err := config.NewDB(cfg)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(cfg)

	var characterCache *cache.Cache
	if cfg.Cache.Enabled {
		characterCache = cache.New(cfg.Cache.TTL, cfg.Cache.PurgeWindow, cfg.Cache.MaxSize)
	}

	sm, err := secrets.NewVaultManager(log)
	if err != nil {
		// Vault being down is not fatal; keys fall back to the env.
		log.Warn("vault unavailable, using environment fallback", "error", err.Error())
	}

	history := ai.NewHistoryStore(rdb, cfg.Chat.HistoryTTL, cfg.Chat.HistoryLimit)

	var manager secrets.Manager
	if sm != nil {
		manager = sm
	}
	gateway := ai.NewBridge(cfg, manager, history, log)

	users := service.NewUserService(db)
	sessions := service.NewSessionService(db, users, rdb, cfg)
	characters := service.NewCharacterService(db, characterCache)
	personas := service.NewPersonaService(db)
	conversations := service.NewConversationService(db, characters)
	rooms := service.NewRoomService(db, characters)
	messages := service.NewMessageService(db)
	chat := service.NewChatService(conversations, rooms, characters, personas, messages, gateway, log)

	checker := health.NewChecker(log)
	registerHealthChecks(checker, db, rdb, gateway)

	return &Container{
		Config:              cfg,
		Logger:              log,
		DB:                  db,
		Redis:               rdb,
		Cache:               characterCache,
		Secrets:             manager,
		Gateway:             gateway,
		Health:              checker,
		UserService:         users,
		SessionService:      sessions,
		CharacterService:    characters,
		PersonaService:      personas,
		ConversationService: conversations,
		RoomService:         rooms,
		MessageService:      messages,
		ChatService:         chat,
	}, nil
}
