package main

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/opensearch-ci/release-tracker/go/engine"
	"github.com/opensearch-ci/release-tracker/go/sklog"
	"github.com/opensearch-ci/release-tracker/go/types"
)

// server is the thin request-handling layer around the engine. It owns no
// state and does no auth; it decodes parameters, calls the engine, and
// renders JSON or the structured {error, type} shape.
type server struct {
	eng *engine.Engine
}

func serve(eng *engine.Engine, port string) error {
	srv := &server{eng: eng}
	r := chi.NewRouter()
	r.Post("/query/{family}", srv.queryHandler)
	r.Get("/resolve/components", srv.resolveComponentsHandler)
	r.Get("/resolve/rc-builds", srv.rcBuildsHandler)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())
	sklog.Infof("release-tracker listening on %s", port)
	return http.ListenAndServe(port, r)
}

func (s *server) queryHandler(w http.ResponseWriter, r *http.Request) {
	var req engine.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, engine.ErrorTypeValidation, "invalid request body")
		return
	}
	family := types.Family(chi.URLParam(r, "family"))
	res, err := s.eng.Query(r.Context(), family, req)
	if err != nil {
		renderError(w, err)
		return
	}
	writeJSON(w, res)
}

func (s *server) resolveComponentsHandler(w http.ResponseWriter, r *http.Request) {
	version := r.URL.Query().Get("version")
	buildNumbers := types.NormalizeStringList(r.URL.Query()["build_number"])
	res, err := s.eng.ResolveComponentsFromBuildNumbers(r.Context(), version, buildNumbers)
	if err != nil {
		renderError(w, err)
		return
	}
	writeJSON(w, res)
}

func (s *server) rcBuildsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	version := q.Get("version")
	rc := q.Get("rc")
	if component := q.Get("component"); component != "" {
		res, err := s.eng.RCBuildNumbersForComponent(r.Context(), version, rc, component)
		if err != nil {
			renderError(w, err)
			return
		}
		writeJSON(w, res)
		return
	}
	res, err := s.eng.RCBuildNumbersByComponent(r.Context(), version, rc)
	if err != nil {
		renderError(w, err)
		return
	}
	writeJSON(w, res)
}

func renderError(w http.ResponseWriter, err error) {
	switch engine.ErrorType(err) {
	case engine.ErrorTypeValidation:
		httpError(w, http.StatusBadRequest, engine.ErrorTypeValidation, err.Error())
	case engine.ErrorTypeBackend:
		sklog.Errorf("backend query failed: %s", err)
		httpError(w, http.StatusBadGateway, engine.ErrorTypeBackend, err.Error())
	default:
		sklog.Errorf("query failed: %s", err)
		httpError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}

func httpError(w http.ResponseWriter, code int, errType, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": msg,
		"type":  errType,
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		sklog.Errorf("failed to encode response: %s", err)
	}
}
