package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"selfbot/models"
)

// SnapshotProvider exposes a read-only copy of the session state
type SnapshotProvider interface {
	Snapshot() models.SessionSnapshot
}

type StatusResponse struct {
	Status        string                 `json:"status"`
	UptimeSeconds int64                  `json:"uptime_seconds"`
	Commands      int                    `json:"commands"`
	Session       models.SessionSnapshot `json:"session"`
}

type HealthHTTPHandler struct {
	snapshots      SnapshotProvider
	commandCount   int
	allowedOrigins []string
	startedAt      time.Time
	now            func() time.Time
}

func NewHealthHTTPHandler(snapshots SnapshotProvider, commandCount int, allowedOrigins string) *HealthHTTPHandler {
	origins := strings.Split(allowedOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}

	return &HealthHTTPHandler{
		snapshots:      snapshots,
		commandCount:   commandCount,
		allowedOrigins: origins,
		startedAt:      time.Now(),
		now:            time.Now,
	}
}

func (h *HealthHTTPHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HealthHTTPHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	h.writeJSONResponse(w, http.StatusOK, StatusResponse{
		Status:        "ok",
		UptimeSeconds: int64(h.now().Sub(h.startedAt) / time.Second),
		Commands:      h.commandCount,
		Session:       h.snapshots.Snapshot(),
	})
}

func (h *HealthHTTPHandler) SetupEndpoints(router *mux.Router) {
	router.HandleFunc("/health", h.HandleHealth).Methods("GET")
	router.HandleFunc("/status", h.HandleStatus).Methods("GET")
}

// Handler builds the router with CORS applied for browser dashboards
func (h *HealthHTTPHandler) Handler() http.Handler {
	router := mux.NewRouter()
	h.SetupEndpoints(router)

	c := cors.New(cors.Options{
		AllowedOrigins: h.allowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
	})
	return c.Handler(router)
}

func (h *HealthHTTPHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
	}
}
