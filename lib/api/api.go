package api

//go:generate swag init -g api.go -o docs --outputTypes go

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/pprof"
	"sync"
	"time"

	"github.com/fosdem/gltriangle/lib/config"
	"github.com/fosdem/gltriangle/lib/metrics"
	"github.com/fosdem/gltriangle/lib/stats"
	"github.com/gorilla/websocket"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/fosdem/gltriangle/lib/api/docs"
)

// Controller is the part of the render loop the API may steer.
type Controller interface {
	RequestShutdown()
}

type Api struct {
	srv  http.Server
	mux  *http.ServeMux
	cfg  *config.Config
	ctrl Controller

	Stats *stats.Stats

	wsClients map[*websocket.Conn]bool
	wsMutex   sync.Mutex
}

// @title			gltriangle API
// @version		1.0
// @description	Status and control of a running gltriangle window
func New(cfg *config.Config, ctrl Controller, s *stats.Stats) *Api {
	a := &Api{}
	a.cfg = cfg
	a.ctrl = ctrl
	a.mux = http.NewServeMux()
	a.srv.Handler = a.mux
	if cfg.Api != nil {
		a.srv.Addr = cfg.Api.Bind
	}
	a.wsClients = make(map[*websocket.Conn]bool)
	a.Stats = s

	if cfg.Api != nil && cfg.Api.EnableProfiler {
		a.mux.HandleFunc("/prof", a.profileCPU)
	}
	a.mux.HandleFunc("/api/kill", a.suicide)
	a.mux.HandleFunc("/api/stats", a.getStats)
	a.mux.HandleFunc("/api/config", a.handleConfig)
	a.mux.HandleFunc("/api/ws", a.handleWebsocket)
	a.mux.Handle("/metrics", metrics.Handler())
	a.mux.Handle("/swagger/", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	return a
}

func (a *Api) Handler() http.Handler {
	return a.mux
}

func (a *Api) Serve() error {
	return a.srv.ListenAndServe()
}

func (a *Api) Shutdown(ctx context.Context) error {
	return a.srv.Shutdown(ctx)
}

func (a *Api) profileCPU(w http.ResponseWriter, _ *http.Request) {
	err := pprof.StartCPUProfile(w)
	if err != nil {
		http.Error(w, fmt.Sprintf("Could not start CPU profile: %s", err), http.StatusInternalServerError)
		return
	}
	time.Sleep(10 * time.Second)
	pprof.StopCPUProfile()
}

// @Summary	Close the window and exit
// @Router		/api/kill [post]
// @Tags		base
// @Success	200
func (a *Api) suicide(w http.ResponseWriter, _ *http.Request) {
	slog.Info("shutting down as per api request", slog.String("module", "api"))
	a.ctrl.RequestShutdown()
	_, err := fmt.Fprintf(w, "\"ok\"\n")
	if err != nil {
		slog.Warn(fmt.Sprintf("could not write response: %s", err), slog.String("module", "api"))
		return
	}
}

// @Summary	Get render statistics
// @Router		/api/stats [get]
// @Tags		base
// @Produce	json
// @Success	200	{object}	stats.Snapshot
func (a *Api) getStats(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(a.Stats.Snapshot())
	if err != nil {
		http.Error(w, fmt.Sprintf("could encode stats: %s", err), http.StatusInternalServerError)
		return
	}
}

type Config struct {
	Variant           string `json:"variant"`
	Title             string `json:"title"`
	Width             int    `json:"width"`
	Height            int    `json:"height"`
	GLVersion         string `json:"gl_version"`
	Dimensions        int    `json:"dimensions"`
	PositionAttribute string `json:"position_attribute"`
	ClearColour       string `json:"clear_colour"`
	ExitKey           string `json:"exit_key"`
}

// @Summary	Get the active configuration
// @Router		/api/config [get]
// @Tags		base
// @Produce	json
// @Success	200	{object}	Config
func (a *Api) handleConfig(w http.ResponseWriter, _ *http.Request) {
	result := &Config{
		Variant:           a.cfg.Variant,
		Title:             a.cfg.Window.Title,
		Width:             a.cfg.Window.Width,
		Height:            a.cfg.Window.Height,
		GLVersion:         fmt.Sprintf("%d.%d core", a.cfg.Window.GLMajor, a.cfg.Window.GLMinor),
		Dimensions:        a.cfg.Geometry.Dimensions,
		PositionAttribute: a.cfg.Geometry.PositionAttribute,
		ClearColour:       a.cfg.ClearColour,
		ExitKey:           a.cfg.ExitKey,
	}
	w.Header().Set("Content-Type", "application/json")
	encoder := json.NewEncoder(w)
	err := encoder.Encode(result)
	if err != nil {
		http.Error(w, fmt.Sprintf("couldn't encode config: %s", err), http.StatusInternalServerError)
		return
	}
}

// ServeInBackground starts the API when cfg has an api section and
// returns nil otherwise.
func ServeInBackground(cfg *config.Config, ctrl Controller, s *stats.Stats) *Api {
	if cfg.Api == nil {
		return nil
	}
	theApi := New(cfg, ctrl, s)

	slog.Info(fmt.Sprintf("starting web server on %s", cfg.Api.Bind), slog.String("module", "api"))
	go func() {
		err := theApi.Serve()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error(fmt.Sprintf("could not start web server: %s", err), slog.String("module", "api"))
		}
	}()
	return theApi
}
