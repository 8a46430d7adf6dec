package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/quokkaworks/chatgate/internal/chat/service"
	"github.com/quokkaworks/chatgate/internal/chat/store"
	"github.com/quokkaworks/chatgate/pkg/httpx"
	"github.com/quokkaworks/chatgate/pkg/slogx"

	_ "github.com/quokkaworks/chatgate/api/chat" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion        string
	startTime           time.Time
	logger              *slog.Logger
	assistantConfigured bool

	store          store.Store
	InviteService  *service.InviteService
	SessionService *service.SessionService
	MessageService *service.MessageService
	ChatService    *service.ChatService
	Transcriber    Transcriber
}

func NewRouter(
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	assistantConfigured bool,
) *Router {
	r := &Router{
		Mux:                 http.NewServeMux(),
		buildVersion:        buildVersion,
		startTime:           time.Now(),
		store:               st,
		logger:              logger,
		assistantConfigured: assistantConfigured,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerInvites()
	r.registerSessions()
	r.registerChat()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			ChatGate API
//	@version		0.1.0
//	@description	Invite-gated chat gateway proxying user messages to a hosted assistant,
//	@description	with persistent sessions and transcripts.
//
//	@contact.name	Quokka Works Team
//	@contact.url	https://github.com/quokkaworks/chatgate
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Opaque session token from invite redemption. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerInvites() {
	authn := SessionAuthnMiddleware(r.SessionService)

	// POST /invites/redeem - strict rate limit by IP (the public entry point)
	r.Mux.Handle("POST /v1/invites/redeem",
		httpx.Chain(&InviteRedeemHandler{InviteService: r.InviteService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /invites/mint - admin operation, moderate rate limit by user
	r.Mux.Handle("POST /v1/invites/mint",
		httpx.Chain(&InviteMintHandler{InviteService: r.InviteService},
			authn,
			RequireAdmin(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// GET /invites - admin read, moderate rate limit by user
	r.Mux.Handle("GET /v1/invites",
		httpx.Chain(&InviteListHandler{InviteService: r.InviteService},
			authn,
			RequireAdmin(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSessions() {
	// GET /session - the handler authenticates itself because it also
	// replays the transcript in the same lookup.
	r.Mux.Handle("GET /v1/session",
		httpx.Chain(&SessionRestoreHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerChat() {
	authn := SessionAuthnMiddleware(r.SessionService)

	// POST /chat - strict rate limit by user (each turn costs an upstream run)
	r.Mux.Handle("POST /v1/chat",
		httpx.Chain(&ChatHandler{ChatService: r.ChatService},
			authn,
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)

	// GET /chat/transcript - lenient, read-only
	r.Mux.Handle("GET /v1/chat/transcript",
		httpx.Chain(&TranscriptHandler{MessageService: r.MessageService},
			authn,
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// POST /transcribe - strict rate limit by user (upstream audio model)
	r.Mux.Handle("POST /v1/transcribe",
		httpx.Chain(&TranscribeHandler{Transcriber: r.Transcriber},
			authn,
			httpx.RateLimitByUser(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.assistantConfigured),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
