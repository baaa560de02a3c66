package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/fiesterovishwa12/eseasm/service"
)

const (
	writeWait = 10 * time.Second
	stepPause = 20 * time.Millisecond
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Hub is a placeholder fan-out point for future multi-client
// broadcasting; today each WebSocket connection drives its own session
// directly, but routing through a Hub keeps that extension point open
// without touching handler signatures.
type Hub struct{}

// NewHub returns an empty Hub.
func NewHub() *Hub { return &Hub{} }

// handleWebSocket upgrades the connection and streams one StepEvent per
// executed instruction until the program halts, the client disconnects,
// or the session's kill flag is set.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	sess, err := s.sessions.Get(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	for {
		if sess.Sim.Killed() {
			return
		}
		ins, ok := sess.Sim.CurrentInstruction()
		done, err := sess.Sim.Step()
		if err != nil {
			_ = conn.WriteJSON(map[string]string{"error": err.Error()})
			return
		}

		state := service.StateRunning
		if done {
			state = service.StateHalted
		}
		text := ""
		if ok {
			text = ins.Render()
		}
		event := service.StepEvent{
			StepNo:      sess.Sim.GetPc(),
			Instruction: text,
			Registers:   service.SnapshotRegisters(sess.Sim.GetRegfile(), sess.Sim.GetPc()),
			State:       state,
		}

		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return
		}
		if err := conn.WriteJSON(event); err != nil {
			return
		}
		if done {
			return
		}
		time.Sleep(stepPause)
	}
}
