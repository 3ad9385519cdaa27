// Package api serves coordinate conversions over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/golang/geo/s2"
	"github.com/sirupsen/logrus"
	"github.com/tzneal/tranmerc"
	"github.com/tzneal/tranmerc/internal/metrics"
)

// Server holds the HTTP server and its dependencies.
type Server struct {
	httpServer *http.Server
	logger     logrus.FieldLogger
}

// NewServer creates a configured HTTP server converting with tm. frame
// names the projection in /api/v1/frame responses.
func NewServer(addr string, logger logrus.FieldLogger, tm *tranmerc.TransverseMercator, frame string) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           NewHandler(logger, tm, frame),
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
		logger: logger,
	}
}

// NewHandler returns the routed handler with logging and metrics.
func NewHandler(logger logrus.FieldLogger, tm *tranmerc.TransverseMercator, frame string) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /api/v1/forward", forwardHandler(tm))
	mux.HandleFunc("GET /api/v1/inverse", inverseHandler(tm))
	mux.HandleFunc("GET /api/v1/frame", frameHandler(tm, frame))

	// Build middleware chain: metrics -> logging -> mux.
	var handler http.Handler = mux
	handler = loggingMiddleware(logger)(handler)
	handler = metrics.Middleware(handler)
	return handler
}

// HTTPServer returns the underlying *http.Server for external control (e.g. shutdown).
func (s *Server) HTTPServer() *http.Server {
	return s.httpServer
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	s.logger.WithField("addr", s.httpServer.Addr).Info("listening")
	return s.httpServer.ListenAndServe()
}

// ForwardResponse is the body of a successful forward conversion.
type ForwardResponse struct {
	Easting  float64 `json:"easting"`
	Northing float64 `json:"northing"`
	Warning  string  `json:"warning,omitempty"`
}

// InverseResponse is the body of a successful inverse conversion. Angles
// are in degrees.
type InverseResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Warning   string  `json:"warning,omitempty"`
}

// FrameResponse describes the projection being served. Angles are in
// degrees.
type FrameResponse struct {
	Name              string  `json:"name"`
	Ellipsoid         string  `json:"ellipsoid"`
	SemiMajorAxis     float64 `json:"semi_major_axis"`
	InverseFlattening float64 `json:"inverse_flattening"`
	CentralMeridian   float64 `json:"central_meridian"`
	OriginLatitude    float64 `json:"origin_latitude"`
	ScaleFactor       float64 `json:"scale_factor"`
	FalseEasting      float64 `json:"false_easting"`
	FalseNorthing     float64 `json:"false_northing"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Param string `json:"param,omitempty"`
}

func forwardHandler(tm *tranmerc.TransverseMercator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lat, ok := floatParam(w, r, "lat")
		if !ok {
			return
		}
		lon, ok := floatParam(w, r, "lon")
		if !ok {
			return
		}

		mc, err := tm.ConvertFromGeodetic(s2.LatLngFromDegrees(lat, lon))
		metrics.ObserveConversion(metrics.Forward, err, mc.Warning)
		if err != nil {
			writeConversionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ForwardResponse{Easting: mc.Easting, Northing: mc.Northing, Warning: mc.Warning})
	}
}

func inverseHandler(tm *tranmerc.TransverseMercator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		easting, ok := floatParam(w, r, "easting")
		if !ok {
			return
		}
		northing, ok := floatParam(w, r, "northing")
		if !ok {
			return
		}

		gc, err := tm.Inverse(easting, northing)
		metrics.ObserveConversion(metrics.Inverse, err, gc.Warning)
		if err != nil {
			writeConversionError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, InverseResponse{
			Latitude:  gc.Lat.Degrees(),
			Longitude: gc.Lng.Degrees(),
			Warning:   gc.Warning,
		})
	}
}

func frameHandler(tm *tranmerc.TransverseMercator, name string) http.HandlerFunc {
	e := tm.Ellipsoid()
	p := tm.Parameters()
	resp := FrameResponse{
		Name:              name,
		Ellipsoid:         e.Code,
		SemiMajorAxis:     e.SemiMajorAxis,
		InverseFlattening: e.InverseFlattening(),
		CentralMeridian:   p.CentralMeridian * 180 / math.Pi,
		OriginLatitude:    p.OriginLatitude * 180 / math.Pi,
		ScaleFactor:       p.ScaleFactor,
		FalseEasting:      p.FalseEasting,
		FalseNorthing:     p.FalseNorthing,
	}
	if math.IsInf(resp.InverseFlattening, 0) {
		resp.InverseFlattening = 0
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, resp)
	}
}

// floatParam reads a required finite query parameter, writing a 400
// response when it is missing or malformed.
func floatParam(w http.ResponseWriter, r *http.Request, name string) (float64, bool) {
	s := r.URL.Query().Get(name)
	if s == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing query parameter", Param: name})
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "query parameter must be a finite number", Param: name})
		return 0, false
	}
	return v, true
}

func writeConversionError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}
	var te *tranmerc.Error
	if errors.As(err, &te) {
		resp.Param = te.Param
	}
	status := http.StatusBadRequest
	if errors.Is(err, tranmerc.ErrOutOfRange) {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// probePath returns true for health probe paths that should not log at INFO.
func probePath(path string) bool {
	return path == "/healthz" || path == "/metrics"
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

func loggingMiddleware(logger logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(sr, r)

			entry := logger.WithFields(logrus.Fields{
				"component":   "api",
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      sr.statusCode,
				"duration_ms": time.Since(start).Milliseconds(),
				"remote_ip":   r.RemoteAddr,
			})
			if probePath(r.URL.Path) {
				entry.Debug("request")
			} else {
				entry.Info("request")
			}
		})
	}
}
