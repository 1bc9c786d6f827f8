package httpserver

import "net/http"

// Routes groups handlers.
type Routes struct {
	Predict  http.HandlerFunc
	Health   http.HandlerFunc
	Metrics  http.Handler
	NotFound http.HandlerFunc
}

// NewRouter registers endpoints. /predict dispatches on method internally
// because POST (inference) and GET (last-result fallback) share the path.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.Predict != nil {
		mux.Handle("/predict", routes.Predict)
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	if routes.Metrics != nil {
		mux.Handle("/metrics", routes.Metrics)
	}
	if routes.NotFound != nil {
		mux.Handle("/", routes.NotFound)
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
