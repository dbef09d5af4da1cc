package honeypot

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"gf-server/gatekeeper"
	"gf-server/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Paths and keys shared with the bait fragment.
const (
	BaitPath      = "/honeypot.html"
	ViolationPath = "/v1/security/violation"
	TrapPath      = "/v1/security/trap"
	StorageKey    = "gf_blocked"

	maxReportBytes = 4 << 10
)

// BaitData is rendered into the bait fragment.
type BaitData struct {
	SinkPath   string
	TrapPath   string
	StorageKey string
}

// ViolationAck acknowledges a violation report.
type ViolationAck struct {
	Received bool   `json:"received"`
	ID       string `json:"id"`
}

// Sensor serves the bait fragment and turns any interaction with it into a block.
type Sensor struct {
	store      gatekeeper.AdmissionStore
	decoyCount int
	baitTmpl   *template.Template
	newID      func() string
	logger     *zerolog.Logger
}

// NewSensor creates a sensor that records hostile callers in store.
func NewSensor(store gatekeeper.AdmissionStore, decoyCount int, logger *zerolog.Logger) (*Sensor, error) {
	tmpl, err := template.New("bait.html").ParseFS(templateFS, "templates/bait.html")
	if err != nil {
		return nil, fmt.Errorf("parse bait template: %w", err)
	}
	l := logger.With().Str("component", "honeypot").Logger()
	return &Sensor{
		store:      store,
		decoyCount: decoyCount,
		baitTmpl:   tmpl,
		newID:      uuid.NewString,
		logger:     &l,
	}, nil
}

// RenderBait writes the bait fragment.
func (s *Sensor) RenderBait(w io.Writer) error {
	data := BaitData{SinkPath: ViolationPath, TrapPath: TrapPath, StorageKey: StorageKey}
	if err := s.baitTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("execute bait template: %w", err)
	}
	return nil
}

// BaitHandler serves GET /honeypot.html.
func (s *Sensor) BaitHandler(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := s.RenderBait(&buf); err != nil {
		s.logger.Error().Err(err).Msg("Failed to render bait")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Robots-Tag", "noindex, nofollow")
	_, _ = w.Write(buf.Bytes())
}

// ViolationHandler serves POST /v1/security/violation.
func (s *Sensor) ViolationHandler(w http.ResponseWriter, r *http.Request) {
	var report models.ViolationReport
	if err := json.NewDecoder(io.LimitReader(r.Body, maxReportBytes)).Decode(&report); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid violation report", Details: err.Error()})
		return
	}

	id := s.newID()
	s.markHostile(r, normalizeReason(report.Reason), id)
	writeJSON(w, http.StatusOK, ViolationAck{Received: true, ID: id})
}

// TrapHandler serves GET /v1/security/trap. Only automated link followers
// reach it, so the caller is blocked and served the decoy right away.
func (s *Sensor) TrapHandler(w http.ResponseWriter, r *http.Request) {
	s.markHostile(r, ReasonLinkTrap, s.newID())
	writeJSON(w, http.StatusOK, gatekeeper.DecoyResponse(s.decoyCount))
}

// markHostile blocks the caller. Store failures are logged, never surfaced.
func (s *Sensor) markHostile(r *http.Request, reason, id string) {
	ip := gatekeeper.ClientIP(r)
	ViolationsTotal.WithLabelValues(reason).Inc()

	if err := s.store.Block(r.Context(), ip, reason); err != nil {
		s.logger.Error().Err(err).Str("ip", ip).Str("reason", reason).Msg("Failed to block caller")
		return
	}
	s.logger.Warn().Str("ip", ip).Str("reason", reason).Str("violation_id", id).Msg("Caller blocked")
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
