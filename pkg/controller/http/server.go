package http

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/campus-desk/caseinbox/pkg/domain/model"
	"github.com/campus-desk/caseinbox/pkg/domain/types"
	"github.com/campus-desk/caseinbox/pkg/usecase"
	"github.com/campus-desk/caseinbox/pkg/utils/logging"
)

// Server is the REST surface of the inbox engine. Sessions are held in
// memory, one per agent, created on first request.
type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases

	mu       sync.Mutex
	sessions map[types.AgentID]*model.Session
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:   r,
		uc:       uc,
		sessions: make(map[types.AgentID]*model.Session),
	}
	for _, opt := range opts {
		opt(s)
	}

	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Use(agentMiddleware)

		r.Get("/inbox", s.handleInbox)

		r.Route("/cases", func(r chi.Router) {
			r.Post("/bulk/assign", s.handleBulkAssign)
			r.Post("/bulk/status", s.handleBulkStatus)
			r.Post("/bulk/priority", s.handleBulkPriority)
			r.Post("/bulk/tag", s.handleBulkTag)
			r.Post("/merge", s.handleMerge)
			r.Post("/merge/undo", s.handleMergeUndo)
			r.Post("/split", s.handleSplit)
			r.Get("/{caseID}/timeline", s.handleTimeline)
		})

		r.Route("/selection", func(r chi.Router) {
			r.Get("/", s.handleSelectionGet)
			r.Post("/toggle", s.handleSelectionToggle)
			r.Post("/range", s.handleSelectionRange)
			r.Post("/all", s.handleSelectionAll)
			r.Post("/clear", s.handleSelectionClear)
			r.Post("/highlight", s.handleSelectionHighlight)
		})

		r.Get("/agents", s.handleAgents)

		r.Route("/views", func(r chi.Router) {
			r.Get("/", s.handleViewList)
			r.Post("/", s.handleViewCreate)
			r.Put("/{viewID}", s.handleViewUpdate)
			r.Delete("/{viewID}", s.handleViewDelete)
			r.Post("/{viewID}/default", s.handleViewSetDefault)
			r.Post("/{viewID}/apply", s.handleViewApply)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// session returns the agent's session, creating one on first use
func (s *Server) session(agentID types.AgentID) *model.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[agentID]
	if !ok {
		sess = model.NewSession(agentID)
		s.sessions[agentID] = sess
	}
	return sess
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
