// Package router adapts httprouter to the application handler style used by
// the inbound layers. Handlers return a payload or an error; the router owns
// JSON encoding, the error-to-status mapping, and the shared middleware
// chain.
package router

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/casbin/casbin/v3"
	"github.com/julienschmidt/httprouter"
	"github.com/smashstrix/smashstrix/internal/pkg/config"
	"github.com/smashstrix/smashstrix/internal/pkg/goerror"
	"github.com/smashstrix/smashstrix/internal/pkg/instrument"
	"github.com/smashstrix/smashstrix/internal/pkg/jwt"
	"github.com/smashstrix/smashstrix/internal/pkg/uid"
	"github.com/smashstrix/smashstrix/internal/pkg/validator"
)

// Handler is the application handler signature. The returned payload is JSON
// encoded inside the success envelope.
type Handler func(r *Request) (any, error)

type successBody struct {
	Message string         `json:"message"`
	Data    any            `json:"data"`
	Meta    map[string]any `json:"meta,omitempty"`
}

type errorBody struct {
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// Options holds the dependencies a Router needs.
type Options struct {
	Config     config.Config
	CID        uid.StringID
	JWT        jwt.JWT
	Instrument instrument.Instrumentation
	Enforcer   *casbin.Enforcer
	// Revoked reports whether a verified token ID has been revoked, for
	// logout support. Nil disables the check.
	Revoked func(ctx context.Context, tokenID string) bool
	// PublicRoutes lists method to route patterns that skip authentication.
	PublicRoutes map[string][]string
}

// Router is an http.Handler wrapping httprouter with the shared middleware
// chain and response envelopes.
type Router struct {
	hr       *httprouter.Router
	enforcer *casbin.Enforcer
	mws      []Middleware
}

// New builds the application router with its standard middleware.
func New(opts Options) *Router {
	hr := &httprouter.Router{
		RedirectTrailingSlash:  true,
		RedirectFixedPath:      true,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
		SaveMatchedRoutePath:   true,
		NotFound: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, errorBody{Message: "route not found"}, http.StatusNotFound)
		}),
		MethodNotAllowed: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, errorBody{Message: "method not allowed"}, http.StatusMethodNotAllowed)
		}),
	}

	public := make(map[string]map[string]struct{}, len(opts.PublicRoutes))
	for method, routes := range opts.PublicRoutes {
		set := make(map[string]struct{}, len(routes))
		for _, route := range routes {
			set[route] = struct{}{}
		}
		public[method] = set
	}

	return &Router{
		hr:       hr,
		enforcer: opts.Enforcer,
		mws: []Middleware{
			middlewareRecover,
			middlewareRealIP,
			middlewareCorrelationID(opts.CID),
			middlewareObservability(opts.Config, opts.Instrument),
			middlewareMaintenance(opts.Config),
			middlewareAuthentication(opts.JWT, opts.Revoked, public),
		},
	}
}

// GET registers a GET endpoint.
func (r *Router) GET(path string, h Handler, mws ...Middleware) {
	r.handle(http.MethodGet, path, h, mws...)
}

// POST registers a POST endpoint.
func (r *Router) POST(path string, h Handler, mws ...Middleware) {
	r.handle(http.MethodPost, path, h, mws...)
}

// PUT registers a PUT endpoint.
func (r *Router) PUT(path string, h Handler, mws ...Middleware) {
	r.handle(http.MethodPut, path, h, mws...)
}

// PATCH registers a PATCH endpoint.
func (r *Router) PATCH(path string, h Handler, mws ...Middleware) {
	r.handle(http.MethodPatch, path, h, mws...)
}

// DELETE registers a DELETE endpoint.
func (r *Router) DELETE(path string, h Handler, mws ...Middleware) {
	r.handle(http.MethodDelete, path, h, mws...)
}

// Raw registers an endpoint that writes the response itself.
func (r *Router) Raw(method, path string, h http.Handler, mws ...Middleware) {
	r.hr.Handler(method, path, Chain(h, append(r.mws, mws...)...))
}

// Authorize returns a middleware that checks the authenticated subject
// against the casbin policy for the given object and action.
func (r *Router) Authorize(obj, act string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			claims := jwt.GetAuth(req.Context())
			if claims == nil {
				writeJSON(w, errorBody{Message: "authentication required"}, http.StatusUnauthorized)
				return
			}

			sub := "user"
			if claims.IsStaff {
				sub = "staff"
			}

			if r.enforcer != nil {
				allowed, err := r.enforcer.Enforce(sub, obj, act)
				if err != nil || !allowed {
					writeJSON(w, errorBody{Message: "permission denied"}, http.StatusForbidden)
					return
				}
			} else if !claims.IsStaff {
				writeJSON(w, errorBody{Message: "permission denied"}, http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, req)
		})
	}
}

func (r *Router) handle(method, path string, h Handler, mws ...Middleware) {
	r.hr.Handler(method, path, Chain(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		resp, err := h(&Request{Request: req})
		if err != nil {
			if rec, ok := w.(interface{ SetError(error) }); ok {
				rec.SetError(err)
			}
			writeError(w, err)
			return
		}
		writeSuccess(w, resp)
	}), append(r.mws, mws...)...))
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hr.ServeHTTP(w, req)
}

func writeError(w http.ResponseWriter, err error) {
	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		writeJSON(w, errorBody{Message: "internal server error"}, http.StatusInternalServerError)
		return
	}

	body := errorBody{Message: gerr.Msg()}

	var verr validator.V10ValidationError
	if errors.As(err, &verr) {
		body.Errors = verr.Values()
	} else if len(gerr.Fields()) > 0 {
		body.Errors = gerr.Fields()
	}

	writeJSON(w, body, gerr.StatusCode())
}

func writeSuccess(w http.ResponseWriter, resp any) {
	code := http.StatusOK
	if sc, ok := resp.(interface{ StatusCode() int }); ok {
		code = sc.StatusCode()
	}

	if resp == nil || code == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	msg := "success"
	if m, ok := resp.(interface{ Message() string }); ok {
		msg = m.Message()
	}

	var meta map[string]any
	if m, ok := resp.(interface{ Meta() map[string]any }); ok {
		meta = m.Meta()
	}

	writeJSON(w, successBody{Message: msg, Data: resp, Meta: meta}, code)
}

func writeJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("router: encode response body", "error", err)
	}
}
