// Package simulate exposes the "Simulate" action over HTTP.
package simulate

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/NYTimes/gziphandler"
	"github.com/rs/cors"

	"github.com/kilianp07/gridsim/app"
	"github.com/kilianp07/gridsim/config"
	"github.com/kilianp07/gridsim/core/series"
	"github.com/kilianp07/gridsim/infra/logger"
	"github.com/kilianp07/gridsim/pkg/chart"
	"github.com/kilianp07/gridsim/pkg/export"
)

// Form field names.
const (
	FieldStorageCapacity = "storage_capacity"
	FieldTimeStep        = "time_step"
	FieldRenewable       = "renewable"
)

// Simulator runs simulations on behalf of the handler.
type Simulator interface {
	Simulate(req app.Request) (*app.Report, error)
	Defaults() config.SimulationConfig
}

// Options configures NewHandler.
type Options struct {
	MaxUploadBytes int64
	AllowedOrigins []string
	Log            logger.Logger
}

type handler struct {
	sim       Simulator
	maxUpload int64
	log       logger.Logger
}

// NewHandler returns the API routes wrapped in CORS and gzip middleware:
//
//	POST /api/simulate        JSON report
//	POST /api/simulate/chart  PNG chart
//	GET  /api/defaults        default inputs
//	GET  /healthz
func NewHandler(sim Simulator, opts Options) http.Handler {
	h := &handler{sim: sim, maxUpload: opts.MaxUploadBytes, log: opts.Log}
	if h.maxUpload <= 0 {
		h.maxUpload = 1 << 20
	}
	if h.log == nil {
		h.log = logger.NopLogger{}
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/simulate", h.simulate)
	mux.HandleFunc("POST /api/simulate/chart", h.chart)
	mux.HandleFunc("GET /api/defaults", h.defaults)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	c := cors.New(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
	})
	return c.Handler(gziphandler.GzipHandler(mux))
}

func (h *handler) simulate(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.run(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, export.NewReport(rep.ID, rep.Source.String(), rep.Result, rep.Summary))
}

func (h *handler) chart(w http.ResponseWriter, r *http.Request) {
	rep, ok := h.run(w, r)
	if !ok {
		return
	}
	p, err := chart.New(rep.Result)
	if err != nil {
		h.log.Errorf("chart %s: %v", rep.ID, err)
		writeError(w, http.StatusInternalServerError, "chart rendering failed")
		return
	}
	wt, err := p.WriterTo(chart.Width, chart.Height, "png")
	if err != nil {
		h.log.Errorf("chart %s: %v", rep.ID, err)
		writeError(w, http.StatusInternalServerError, "chart rendering failed")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Run-ID", rep.ID)
	if _, err := wt.WriteTo(w); err != nil {
		h.log.Errorf("write chart %s: %v", rep.ID, err)
	}
}

type defaultsResponse struct {
	StorageCapacity string    `json:"storage_capacity"`
	TimeStep        string    `json:"time_step"`
	Demand          []float64 `json:"demand"`
	Renewable       []float64 `json:"renewable"`
}

func (h *handler) defaults(w http.ResponseWriter, _ *http.Request) {
	d := h.sim.Defaults()
	renewable := series.Resolve(nil, d.Renewable).Values
	writeJSON(w, http.StatusOK, defaultsResponse{
		StorageCapacity: d.StorageCapacity,
		TimeStep:        d.TimeStep,
		Demand:          d.Demand,
		Renewable:       renewable,
	})
}

// run parses the form and simulates. It writes the error response itself and
// reports false when the request was rejected.
func (h *handler) run(w http.ResponseWriter, r *http.Request) (*app.Report, bool) {
	req, cleanup, err := h.parseRequest(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	defer cleanup()

	rep, err := h.sim.Simulate(req)
	if err != nil {
		if app.IsUserError(err) {
			writeError(w, http.StatusBadRequest, app.UserMessage(err))
			return nil, false
		}
		h.log.Errorf("simulate: %v", err)
		writeError(w, http.StatusInternalServerError, app.UserMessage(err))
		return nil, false
	}
	return rep, true
}

func (h *handler) parseRequest(w http.ResponseWriter, r *http.Request) (app.Request, func(), error) {
	noop := func() {}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	multi := strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
	var err error
	if multi {
		err = r.ParseMultipartForm(h.maxUpload)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return app.Request{}, noop, errors.New("invalid form data")
	}

	d := h.sim.Defaults()
	req := app.Request{
		StorageCapacity: formValue(r, FieldStorageCapacity, d.StorageCapacity),
		TimeStep:        formValue(r, FieldTimeStep, d.TimeStep),
	}
	if !multi {
		return req, noop, nil
	}
	file, _, err := r.FormFile(FieldRenewable)
	if errors.Is(err, http.ErrMissingFile) {
		return req, noop, nil
	}
	if err != nil {
		return app.Request{}, noop, errors.New("invalid renewable upload")
	}
	req.Upload = file
	return req, closer(file), nil
}

func closer(f multipart.File) func() {
	return func() { _ = f.Close() }
}

// formValue returns the submitted value, or def when the field is absent.
// A present but empty field is kept so that it fails validation.
func formValue(r *http.Request, key, def string) string {
	if vals, ok := r.Form[key]; ok && len(vals) > 0 {
		return vals[0]
	}
	return def
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
