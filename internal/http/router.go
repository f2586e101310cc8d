package http

import (
	"net/http"
	"strings"
	"time"

	"talenthub/internal/domain/principal"
	"talenthub/internal/http/handlers"
	httpmw "talenthub/internal/http/middleware"
)

type RouterDependencies struct {
	AuthHandler         *handlers.AuthHandler
	ProfileHandler      *handlers.ProfileHandler
	JobHandler          *handlers.JobHandler
	ApplicationHandler  *handlers.ApplicationHandler
	StatsHandler        *handlers.StatsHandler
	NotificationHandler *handlers.NotificationHandler
	RealtimeHandler     *handlers.RealtimeHandler
	AuthMiddleware      *httpmw.AuthMiddleware
	Logger              httpmw.Logger
	RequestTimeout      time.Duration
}

type Router struct {
	deps RouterDependencies
}

const maxBodyBytes = 5 << 20

func NewRouter(deps RouterDependencies) http.Handler {
	return &Router{deps: deps}
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// The websocket endpoint skips the body limit and timeout wrappers;
	// a long-lived connection must not inherit the request deadline.
	if req.URL.Path == "/realtime" {
		handler := httpmw.Chain(r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(r.deps.RealtimeHandler.Connect)), httpmw.RequestID, httpmw.Recover(r.deps.Logger))
		handler.ServeHTTP(w, req)
		return
	}
	handler := httpmw.Chain(r.baseHandler(), httpmw.RequestID, httpmw.Logging(r.deps.Logger), httpmw.BodyLimit(maxBodyBytes), httpmw.Recover(r.deps.Logger), httpmw.Timeout(r.deps.RequestTimeout))
	handler.ServeHTTP(w, req)
}

func (r *Router) baseHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		path := req.URL.Path

		switch {
		case req.Method == http.MethodGet && path == "/health":
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		case req.Method == http.MethodPost && path == "/auth/signup":
			r.deps.AuthHandler.SignUp(w, req)
			return
		case req.Method == http.MethodPost && path == "/auth/signin":
			r.deps.AuthHandler.SignIn(w, req)
			return
		case req.Method == http.MethodGet && path == "/jobs":
			r.deps.JobHandler.Search(w, req)
			return
		}

		if strings.HasPrefix(path, "/auth/refresh") || strings.HasPrefix(path, "/profiles") || strings.HasPrefix(path, "/jobs") || strings.HasPrefix(path, "/applications") || strings.HasPrefix(path, "/employer") || strings.HasPrefix(path, "/notifications") {
			protected := r.deps.AuthMiddleware.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				r.handleProtected(w, req)
			}))
			protected.ServeHTTP(w, req)
			return
		}

		http.NotFound(w, req)
	})
}

func (r *Router) handleProtected(w http.ResponseWriter, req *http.Request) {
	path := req.URL.Path

	switch {
	case req.Method == http.MethodPost && path == "/auth/refresh":
		r.deps.AuthHandler.Refresh(w, req)
		return
	case req.Method == http.MethodPost && path == "/profiles/candidate":
		r.deps.ProfileHandler.ProvisionCandidate(w, req)
		return
	case req.Method == http.MethodPost && path == "/profiles/employer":
		r.deps.ProfileHandler.ProvisionEmployer(w, req)
		return
	case req.Method == http.MethodPost && path == "/profiles/recruiter":
		r.deps.ProfileHandler.ProvisionRecruiter(w, req)
		return
	case req.Method == http.MethodGet && path == "/profiles/me":
		r.deps.ProfileHandler.Me(w, req)
		return
	case req.Method == http.MethodPut && path == "/profiles/candidate":
		httpmw.RequireRole(principal.RoleCandidate)(http.HandlerFunc(r.deps.ProfileHandler.UpdateCandidate)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPut && path == "/profiles/employer":
		httpmw.RequireRole(principal.RoleEmployer)(http.HandlerFunc(r.deps.ProfileHandler.UpdateEmployer)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/profiles/candidate/resume":
		httpmw.RequireRole(principal.RoleCandidate)(http.HandlerFunc(r.deps.ProfileHandler.UploadResume)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodPost && path == "/employer/recruiters":
		httpmw.RequireRole(principal.RoleEmployer)(http.HandlerFunc(r.deps.ProfileHandler.InviteRecruiter)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/employer/recruiters":
		httpmw.RequireRole(principal.RoleEmployer)(http.HandlerFunc(r.deps.ProfileHandler.ListRecruiters)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/employer/jobs":
		r.deps.JobHandler.ListMine(w, req)
		return
	case req.Method == http.MethodGet && path == "/employer/dashboard":
		r.deps.StatsHandler.Dashboard(w, req)
		return
	case req.Method == http.MethodPost && path == "/jobs":
		r.deps.JobHandler.Create(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/approve"):
		r.deps.JobHandler.Approve(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/reject"):
		r.deps.JobHandler.Reject(w, req)
		return
	case req.Method == http.MethodPost && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/close"):
		r.deps.JobHandler.Close(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/stats"):
		r.deps.StatsHandler.JobStats(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/") && strings.HasSuffix(path, "/applications"):
		r.deps.ApplicationHandler.ListByJob(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/jobs/"):
		r.deps.JobHandler.Get(w, req)
		return
	case req.Method == http.MethodPost && path == "/applications":
		httpmw.RequireRole(principal.RoleCandidate)(http.HandlerFunc(r.deps.ApplicationHandler.Apply)).ServeHTTP(w, req)
		return
	case req.Method == http.MethodGet && path == "/applications":
		r.deps.ApplicationHandler.List(w, req)
		return
	case req.Method == http.MethodPatch && strings.HasPrefix(path, "/applications/") && strings.HasSuffix(path, "/status"):
		r.deps.ApplicationHandler.UpdateStatus(w, req)
		return
	case req.Method == http.MethodGet && strings.HasPrefix(path, "/applications/"):
		r.deps.ApplicationHandler.Get(w, req)
		return
	case req.Method == http.MethodGet && path == "/notifications":
		r.deps.NotificationHandler.List(w, req)
		return
	case req.Method == http.MethodPost && path == "/notifications/read":
		r.deps.NotificationHandler.MarkRead(w, req)
		return
	}

	http.NotFound(w, req)
}
