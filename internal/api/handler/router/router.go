package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/justinas/alice"

	"github.com/vfg2006/phone-retail-admin-api/pkg/apiErrors"
)

// Route associa método e caminho a um handler com os middlewares próprios da rota,
// aplicados na ordem em que aparecem
type Route struct {
	Path        string
	Method      string
	Handler     http.Handler
	Middlewares []func(http.Handler) http.Handler
}

type Router struct {
	router *httprouter.Router
	routes []string
}

type ConfigRouter func(router *Router)

func WithRoutes(routes ...Route) ConfigRouter {
	return func(router *Router) {
		router.AddRoutes(routes...)
	}
}

func New(configs ...ConfigRouter) *Router {
	r := &Router{router: httprouter.New()}

	r.router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrNotFound, "Rota não encontrada", req.URL.Path)
	})
	r.router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Método não permitido para a rota", req.Method+" "+req.URL.Path)
	})

	for _, config := range configs {
		config(r)
	}

	return r
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}

// Routes devolve "MÉTODO caminho" de cada rota registrada, na ordem de registro
func (r *Router) Routes() []string {
	return append([]string(nil), r.routes...)
}

// AddRoutes registra as rotas. Caminho repetido ou conflitante faz o httprouter entrar em pânico na subida.
func (r *Router) AddRoutes(routes ...Route) {
	for _, route := range routes {
		chain := alice.New()
		for _, m := range route.Middlewares {
			chain = chain.Append(m)
		}

		r.router.Handler(route.Method, route.Path, chain.Then(route.Handler))
		r.routes = append(r.routes, route.Method+" "+route.Path)
	}
}
