package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/qiaoguanyu11/actorreal/internal/api/handler"
	"github.com/qiaoguanyu11/actorreal/internal/api/middleware"
	"github.com/qiaoguanyu11/actorreal/internal/auth"
	"github.com/qiaoguanyu11/actorreal/internal/core/domain"
	"github.com/qiaoguanyu11/actorreal/internal/core/ports"
	"github.com/qiaoguanyu11/actorreal/internal/core/service"
	"github.com/qiaoguanyu11/actorreal/internal/infrastructure/config"
	redisstore "github.com/qiaoguanyu11/actorreal/internal/infrastructure/db/redis"
	"github.com/qiaoguanyu11/actorreal/internal/upstream"
)

// Deps carries the externally constructed dependencies the router wires
// together. The audit dispatcher is built in main because its worker pool
// is tied to the process lifecycle.
type Deps struct {
	Config      *config.Config
	Redis       *redis.Client
	MongoClient *mongo.Client
	AuditSink   middleware.AuditSink
	AuditLog    ports.AuditLog
	Log         zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()

	// --- Upstream clients ---
	core := upstream.NewClient(upstream.Config{
		BaseURL:         d.Config.Upstream.BaseURL,
		Timeout:         d.Config.Upstream.Timeout,
		ActorsPrefix:    d.Config.Upstream.ActorsPrefix,
		MediaPrefix:     d.Config.Upstream.MediaPrefix,
		SelfMediaPrefix: d.Config.Upstream.SelfMediaPrefix,
		TagsPrefix:      d.Config.Upstream.TagsPrefix,
		AgentPrefix:     d.Config.Upstream.AgentPrefix,
		AuthPrefix:      d.Config.Upstream.AuthPrefix,
		UsersPrefix:     d.Config.Upstream.UsersPrefix,
		InvitesPrefix:   d.Config.Upstream.InvitesPrefix,
	}, d.Log)

	actors := upstream.NewActors(core)
	tags := upstream.NewTags(core)
	authc := upstream.NewAuth(core)
	agents := upstream.NewAgents(core)
	media := upstream.NewMedia(core)
	invites := upstream.NewInvites(core)

	// --- Services ---
	tokens := auth.NewTokenManager(d.Config.Session.Secret, d.Config.Session.TTL)
	store := redisstore.NewSessionStore(d.Redis, d.Config.Session.TTL)
	sessions := service.NewSessionService(store, authc, invites, tokens, d.Log)
	roster := service.NewRosterService(actors, tags, d.Log)

	// --- Global middleware ---
	e.HTTPErrorHandler = NewHTTPErrorHandler(sessions, d.Log)
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("backoffice"))
	e.Use(middleware.Session(sessions, tokens, d.Log))
	e.Use(middleware.Audit(d.AuditSink))

	// --- Handlers ---
	cookieMaxAge := int(d.Config.Session.TTL.Seconds())
	authHandler := handler.NewAuthHandler(sessions, cookieMaxAge)
	actorHandler := handler.NewActorHandler(roster, actors)
	tagHandler := handler.NewTagHandler(tags)
	inviteHandler := handler.NewInviteHandler(invites)
	agentHandler := handler.NewAgentHandler(agents)
	mediaHandler := handler.NewMediaHandler(media)
	userHandler := handler.NewUserHandler(authc)
	auditHandler := handler.NewAuditHandler(d.AuditLog)
	healthHandler := handler.NewHealthHandler(d.Redis, d.MongoClient)

	anySession := middleware.Guard(domain.RoleGuest, domain.RolePerformer)
	performer := middleware.Guard(domain.RolePerformer)
	performerOrGuest := middleware.Guard(domain.RolePerformer, domain.RoleGuest)
	manager := middleware.Guard(domain.RoleManager)
	admin := middleware.Guard(domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/guest", authHandler.GuestLogin)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/logout", authHandler.Logout, anySession)
	e.GET("/auth/me", authHandler.Me, anySession)

	// --- Actor routes ---
	e.GET("/actors", actorHandler.List, performerOrGuest)
	e.POST("/actors", actorHandler.Create, performer)
	e.GET("/actors/unassigned", actorHandler.ListUnassigned, manager)
	e.PUT("/actors/self", actorHandler.SelfUpdate, performer)
	e.GET("/actors/:id", actorHandler.Get, performerOrGuest)
	e.PUT("/actors/:id", actorHandler.Update, performer)
	e.DELETE("/actors/:id", actorHandler.Delete, admin)

	// --- Media routes ---
	e.GET("/actors/:id/media", mediaHandler.List, performer)
	e.POST("/actors/:id/media/:kind", mediaHandler.Upload, performer)
	e.DELETE("/actors/:id/media/:mediaId", mediaHandler.Delete, performer)
	e.GET("/my/media", mediaHandler.SelfList, performer)
	e.POST("/my/media/:kind", mediaHandler.SelfUpload, performer)
	e.DELETE("/my/media/:mediaId", mediaHandler.SelfDelete, performer)

	// --- Tag routes ---
	e.GET("/tags", tagHandler.List, manager)
	e.POST("/tags", tagHandler.Create, manager)
	e.GET("/tags/:id", tagHandler.Get, manager)
	e.PUT("/tags/:id", tagHandler.Update, manager)
	e.DELETE("/tags/:id", tagHandler.Delete, manager)
	e.GET("/actors/:id/tags", tagHandler.ActorTags, performer)
	e.POST("/actors/:id/tags", tagHandler.AttachTags, manager)
	e.PUT("/actors/:id/tags", tagHandler.ReplaceTags, manager)
	e.DELETE("/actors/:id/tags/:tagId", tagHandler.DetachTag, manager)

	// --- Agent assignment routes ---
	e.POST("/agents/assign", agentHandler.Assign, admin)
	e.GET("/agents/:id/actors", agentHandler.Actors, manager)
	e.DELETE("/agents/actors/:actorId", agentHandler.Unassign, admin)

	// --- Invite-code routes ---
	e.GET("/invite-codes", inviteHandler.List, manager)
	e.POST("/invite-codes", inviteHandler.Create, manager)
	e.PUT("/invite-codes/:id", inviteHandler.Update, manager)
	e.DELETE("/invite-codes/:id", inviteHandler.Delete, manager)
	e.GET("/invite-codes/verify/:code", inviteHandler.Verify)

	// --- Admin user management ---
	e.GET("/users", userHandler.List, admin)
	e.POST("/users/managers", userHandler.CreateManager, admin)
	e.GET("/audit", auditHandler.Recent, admin)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
