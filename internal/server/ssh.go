// Package server serves composed boards to SSH sessions as framed glyph
// maps. Boards are loaded once at startup and shared across sessions; a
// server-wide mutex serializes recomposition against rendering.
package server

import (
	"fmt"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"

	"pixelboard/internal/board"
)

// action is a viewer key press decoded from session input.
type action int

const (
	actionNone action = iota
	actionPrev
	actionNext
	actionRecompose
	actionQuit
)

// SSHServer serves the board viewer over SSH.
type SSHServer struct {
	addr    string
	hostKey string
	boards  map[string]*board.Board
	names   []string // sorted board names for cycling
	initial string

	mu sync.Mutex // guards board mutation and rendering
}

// NewSSHServer creates a viewer bound to addr serving the given boards.
// defaultBoard is shown first when a session opens; when it is unknown the
// first board in name order is used.
func NewSSHServer(addr, hostKey string, boards map[string]*board.Board, defaultBoard string) *SSHServer {
	names := make([]string, 0, len(boards))
	for name := range boards {
		names = append(names, name)
	}
	sort.Strings(names)

	initial := defaultBoard
	if _, ok := boards[initial]; !ok && len(names) > 0 {
		initial = names[0]
	}

	return &SSHServer{
		addr:    addr,
		hostKey: hostKey,
		boards:  boards,
		names:   names,
		initial: initial,
	}
}

// Start begins listening for SSH connections. Blocks.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr: s.addr,
		Handler: func(sess ssh.Session) {
			s.handleSession(sess)
		},
	}

	if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
		return fmt.Errorf("set host key: %w", err)
	}

	log.Printf("SSH viewer listening on %s (%d boards)", s.addr, len(s.names))
	return server.ListenAndServe()
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}

	user := sess.User()
	log.Printf("Viewer connected: %s", user)
	defer log.Printf("Viewer disconnected: %s", user)

	if len(s.names) == 0 {
		fmt.Fprintln(sess, "No boards available.")
		return
	}

	termW := ptyReq.Window.Width
	termH := ptyReq.Window.Height
	var termMu sync.Mutex

	io.WriteString(sess, enableAltScreen())
	io.WriteString(sess, hideCursor())
	defer func() {
		io.WriteString(sess, showCursor())
		io.WriteString(sess, disableAltScreen())
	}()

	current := 0
	for i, name := range s.names {
		if name == s.initial {
			current = i
			break
		}
	}

	actionCh := make(chan action, 8)
	quitCh := make(chan struct{})

	// Goroutine: read and decode key presses.
	go func() {
		defer close(quitCh)
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			for _, a := range parseInput(buf[:n]) {
				if a == actionQuit {
					return
				}
				select {
				case actionCh <- a:
				default:
				}
			}
		}
	}()

	// Goroutine: track window resizes and trigger a redraw.
	go func() {
		for win := range winCh {
			termMu.Lock()
			termW = win.Width
			termH = win.Height
			termMu.Unlock()
			select {
			case actionCh <- actionNone:
			default:
			}
		}
	}()

	draw := func() {
		termMu.Lock()
		w, h := termW, termH
		termMu.Unlock()
		name := s.names[current]
		s.mu.Lock()
		frame := renderView(name, s.boards[name], current, len(s.names), w, h)
		s.mu.Unlock()
		io.WriteString(sess, frame)
	}

	draw()
	for {
		select {
		case <-quitCh:
			return
		case a := <-actionCh:
			switch a {
			case actionPrev:
				current = (current + len(s.names) - 1) % len(s.names)
			case actionNext:
				current = (current + 1) % len(s.names)
			case actionRecompose:
				name := s.names[current]
				s.mu.Lock()
				err := s.boards[name].Update()
				s.mu.Unlock()
				if err != nil {
					log.Printf("Recompose %q: %v", name, err)
				}
			}
			draw()
		}
	}
}

// renderView lays out the board screen centered in the terminal with a
// title above and key hints below.
func renderView(name string, b *board.Board, index, total, termW, termH int) string {
	lines := strings.Split(strings.TrimRight(b.Render(), "\n"), "\n")
	width := 0
	for _, line := range lines {
		if len(line) > width {
			width = len(line)
		}
	}

	offX := max((termW-width)/2, 0)
	offY := max((termH-len(lines))/2, 1)

	var sb strings.Builder
	sb.Grow(4096)
	sb.WriteString(clearScreen())

	title := fmt.Sprintf("%s [%d/%d] %d sprites", name, index+1, total, b.Len())
	sb.WriteString(moveTo(max(offY-1, 1), max((termW-len(title))/2, 1)))
	sb.WriteString(bold + title + reset)

	for i, line := range lines {
		sb.WriteString(moveTo(offY+1+i, offX+1))
		sb.WriteString(line)
	}

	hints := "arrows cycle boards | r recompose | q quit"
	hintW := utf8.RuneCountInString(hints)
	sb.WriteString(moveTo(min(offY+len(lines)+1, termH), max((termW-hintW)/2, 1)))
	sb.WriteString(dim + hints + reset)
	return sb.String()
}

// parseInput converts raw session bytes into viewer actions. Handles arrow
// key escape sequences, h/l, r, q, and Ctrl-C.
func parseInput(data []byte) []action {
	var actions []action
	i := 0
	for i < len(data) {
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			switch data[i+2] {
			case 'C':
				actions = append(actions, actionNext)
			case 'D':
				actions = append(actions, actionPrev)
			}
			i += 3
			continue
		}

		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'r', 'R':
			actions = append(actions, actionRecompose)
		case 'h':
			actions = append(actions, actionPrev)
		case 'l':
			actions = append(actions, actionNext)
		case 'q', 'Q':
			actions = append(actions, actionQuit)
		case 3: // Ctrl-C
			actions = append(actions, actionQuit)
		}
		i += size
	}
	return actions
}
