package debugger

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TUI is the four-pane text interface over a Debugger: disassembly,
// registers, memory, and a command line feeding an output log.
type TUI struct {
	Debugger *Debugger
	App      *tview.Application

	Layout          *tview.Flex
	DisassemblyView *tview.TextView
	RegisterView    *tview.TextView
	MemoryView      *tview.TextView
	OutputView      *tview.TextView
	CommandInput    *tview.InputField
}

// NewTUI builds the views and layout around an existing Debugger.
func NewTUI(d *Debugger) *TUI {
	t := &TUI{
		Debugger: d,
		App:      tview.NewApplication(),
	}
	t.initViews()
	t.buildLayout()
	t.setupKeyBindings()
	return t
}

func (t *TUI) initViews() {
	t.DisassemblyView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.DisassemblyView.SetBorder(true).SetTitle(" Disassembly ")

	t.RegisterView = tview.NewTextView().SetDynamicColors(true)
	t.RegisterView.SetBorder(true).SetTitle(" Registers ")

	t.MemoryView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true)
	t.MemoryView.SetBorder(true).SetTitle(" Memory ")

	t.OutputView = tview.NewTextView().SetDynamicColors(true).SetScrollable(true).SetWrap(true)
	t.OutputView.SetBorder(true).SetTitle(" Output ")

	t.CommandInput = tview.NewInputField().SetLabel("> ")
	t.CommandInput.SetBorder(true).SetTitle(" Command ")
	t.CommandInput.SetDoneFunc(t.handleCommand)
}

func (t *TUI) buildLayout() {
	right := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.RegisterView, 0, 1, false).
		AddItem(t.MemoryView, 0, 1, false)

	top := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(t.DisassemblyView, 0, 2, false).
		AddItem(right, 0, 1, false)

	t.Layout = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(top, 0, 4, false).
		AddItem(t.OutputView, 8, 0, false).
		AddItem(t.CommandInput, 3, 0, true)
}

func (t *TUI) setupKeyBindings() {
	t.App.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyF10:
			t.runCommand("step")
			return nil
		case tcell.KeyF5:
			t.runCommand("continue")
			return nil
		case tcell.KeyCtrlC:
			t.App.Stop()
			return nil
		}
		return event
	})
}

func (t *TUI) handleCommand(key tcell.Key) {
	if key != tcell.KeyEnter {
		return
	}
	cmd := t.CommandInput.GetText()
	if cmd != "" {
		t.runCommand(cmd)
		t.CommandInput.SetText("")
	}
}

func (t *TUI) runCommand(cmd string) {
	if c := strings.TrimSpace(cmd); c == "quit" || c == "q" {
		t.App.Stop()
		return
	}
	t.Debugger.Output.Reset()
	err := t.Debugger.ExecuteCommand(cmd)
	if err != nil {
		fmt.Fprintf(&t.Debugger.Output, "error: %v\n", err)
	}
	if out := t.Debugger.GetOutput(); out != "" {
		fmt.Fprint(t.OutputView, out)
		t.OutputView.ScrollToEnd()
	}
	t.RefreshAll()
}

// RefreshAll repaints every pane from current Debugger state.
func (t *TUI) RefreshAll() {
	t.updateDisassembly()
	t.updateRegisters()
	t.updateMemory()
	t.App.Draw()
}

func (t *TUI) updateDisassembly() {
	var sb strings.Builder
	for i, ins := range t.Debugger.Insts {
		marker := "  "
		if i == t.Debugger.PC {
			marker = "->"
		}
		fmt.Fprintf(&sb, "%s %3d  %s\n", marker, i, ins.Render())
	}
	t.DisassemblyView.SetText(sb.String())
}

func (t *TUI) updateRegisters() {
	var sb strings.Builder
	for i, v := range t.Debugger.Regs.Snapshot() {
		fmt.Fprintf(&sb, "$%-2d = %d\n", i, v)
	}
	t.RegisterView.SetText(sb.String())
}

func (t *TUI) updateMemory() {
	var sb strings.Builder
	for _, addr := range t.Debugger.Mem.Addresses() {
		fmt.Fprintf(&sb, "mem[%d] = %d\n", addr, t.Debugger.Mem.Read(addr))
	}
	t.MemoryView.SetText(sb.String())
}

// Run starts the TUI event loop. It blocks until the application stops.
func (t *TUI) Run() error {
	t.RefreshAll()
	return t.App.SetRoot(t.Layout, true).SetFocus(t.CommandInput).Run()
}
