package api

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/fiesterovishwa12/eseasm/service"
)

type createSessionRequest struct {
	Source string `json:"source"`
}

type createSessionResponse struct {
	ID string `json:"id"`
}

// handleSession dispatches POST /api/v1/session (create).
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := s.sessions.CreateSession(req.Source)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusCreated, createSessionResponse{ID: session.ID})
}

// handleSessionRoute dispatches the /api/v1/session/{id}[/action] family.
func (s *Server) handleSessionRoute(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/session/")
	parts := strings.SplitN(rest, "/", 2)
	id := parts[0]
	if id == "" {
		http.Error(w, "missing session id", http.StatusBadRequest)
		return
	}

	session, err := s.sessions.Get(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	action := ""
	if len(parts) > 1 {
		action = parts[1]
	}

	switch {
	case action == "" && r.Method == http.MethodDelete:
		s.handleDeleteSession(w, id)
	case action == "run" && r.Method == http.MethodPost:
		s.handleRun(w, session)
	case action == "stop" && r.Method == http.MethodPost:
		s.handleStop(w, session)
	case action == "registers" && r.Method == http.MethodGet:
		s.handleGetRegisters(w, session)
	default:
		http.Error(w, "not found", http.StatusNotFound)
	}
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, id string) {
	if err := s.sessions.Delete(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRun starts the session's simulator on a background goroutine (the
// "runner" of spec.md §5) and returns immediately; the HTTP handler acts
// as the supervisor, observing progress via /registers or /ws and
// requesting cancellation via /stop rather than blocking on completion.
//
// The supervisor also arms the two-phase timeout from the server's config:
// a soft timeout that only logs a stall warning, and a hard timeout that
// calls Kill unconditionally. Both timers are disarmed once the runner
// goroutine reports completion.
func (s *Server) handleRun(w http.ResponseWriter, session *Session) {
	done := make(chan struct{})

	go func() {
		defer close(done)
		if err := session.Sim.Run(); err != nil {
			log.Printf("session %s: run error: %v", session.ID, err)
		}
	}()

	go s.superviseRun(session, done)

	w.WriteHeader(http.StatusAccepted)
}

func (s *Server) superviseRun(session *Session, done <-chan struct{}) {
	soft := s.cfg.SoftKillTimeout()
	hard := s.cfg.HardKillTimeout()

	var softTimer, hardTimer <-chan time.Time
	if soft > 0 {
		t := time.NewTimer(soft)
		defer t.Stop()
		softTimer = t.C
	}
	if hard > 0 {
		t := time.NewTimer(hard)
		defer t.Stop()
		hardTimer = t.C
	}

	for {
		select {
		case <-done:
			return
		case <-softTimer:
			log.Printf("session %s: still running after %s", session.ID, soft)
			softTimer = nil
		case <-hardTimer:
			log.Printf("session %s: exceeded hard timeout %s, killing", session.ID, hard)
			session.Sim.Kill()
			return
		}
	}
}

// handleStop requests cooperative termination of a running session.
func (s *Server) handleStop(w http.ResponseWriter, session *Session) {
	session.Sim.Kill()
	w.WriteHeader(http.StatusNoContent)
}

// handleGetRegisters snapshots the register file. Per spec.md §5 the
// register file is owned by the runner goroutine while a run is in
// progress; callers should treat a snapshot taken mid-run as best-effort
// and rely on /stop + a subsequent poll, or the websocket stream, for a
// consistent view.
func (s *Server) handleGetRegisters(w http.ResponseWriter, session *Session) {
	writeJSON(w, http.StatusOK, service.SnapshotRegisters(session.Sim.GetRegfile(), session.Sim.GetPc()))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
