package greeter

import (
	"fmt"
	"net/http"

	applogger "github.com/tss-calculator/go-lib/pkg/application/logger"
)

type Route struct {
	Method string
	Path   string
	Handle http.HandlerFunc
}

// Routes is the static route table: one entry per (method, path) pair,
// built fresh on every call so callers can not mutate shared state.
func Routes() []Route {
	return []Route{
		{Method: http.MethodGet, Path: "/", Handle: handleHello},
		{Method: http.MethodGet, Path: "/healthz", Handle: handleHealth},
	}
}

// NewHandler builds the HTTP handler for the service. It has no side
// effects and binds no port, so tests can exercise routes directly.
func NewHandler(logger applogger.Logger) http.Handler {
	mux := http.NewServeMux()
	byPath := make(map[string][]Route)
	for _, route := range Routes() {
		byPath[route.Path] = append(byPath[route.Path], route)
	}
	for path, routes := range byPath {
		mux.HandleFunc(path, dispatchByMethod(path, routes))
	}
	return recoverPanics(logger, mux)
}

func handleHello(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "Hello, World!\n")
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprint(w, "ok\n")
}

func dispatchByMethod(path string, routes []Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The "/" pattern is a subtree match on ServeMux; the route table
		// is exact paths only.
		if r.URL.Path != path {
			http.NotFound(w, r)
			return
		}
		for _, route := range routes {
			if route.Method == r.Method {
				route.Handle(w, r)
				return
			}
		}
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}
}

// recoverPanics turns a panicking handler into a 500 response instead of
// taking the whole process down.
func recoverPanics(logger applogger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				logger.Error(fmt.Errorf("%v", v), fmt.Sprintf("panic in handler %v %v", r.Method, r.URL.Path))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
