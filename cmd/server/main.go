package main

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"log"
	"os"

	"pixelboard/internal/board"
	"pixelboard/internal/config"
	"pixelboard/internal/engine"
	"pixelboard/internal/record"
	"pixelboard/internal/server"
	"pixelboard/internal/store"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Config error: %v", err)
		}
		cfg = loaded
	}
	if port := os.Getenv("PORT"); port != "" {
		cfg.Listen = ":" + port
	}

	if err := ensureHostKey(cfg.HostKey); err != nil {
		log.Fatalf("Host key error: %v", err)
	}

	// Boards come from the data store plus any *.json records in the
	// boards directory; directory boards are imported into the store so
	// they survive without the directory.
	boards := make(map[string]*board.Board)

	st, err := store.Open(cfg.AppName)
	if err != nil {
		log.Printf("Board store unavailable: %v (running without persistence)", err)
		st = store.New(nil)
	}
	for _, name := range st.Names() {
		b, err := st.Load(name)
		if err != nil {
			log.Printf("Could not load stored board %q: %v", name, err)
			continue
		}
		boards[name] = b
	}

	if dirBoards, err := record.LoadBoards(cfg.BoardsDir); err != nil {
		log.Printf("Could not load boards from %s: %v", cfg.BoardsDir, err)
	} else {
		for name, b := range dirBoards {
			boards[name] = b
			if err := st.Save(name, b); err != nil {
				log.Printf("Could not import board %q into the store: %v", name, err)
			}
		}
	}

	if len(boards) == 0 {
		log.Print("No boards found, serving the built-in demo board")
		boards["demo"] = demoBoard()
	}

	// Compose every board once before serving; conflicting artifacts are
	// refused rather than rendered half-composed.
	for name, b := range boards {
		if err := b.Update(); err != nil {
			log.Printf("Board %q failed composition: %v (dropped)", name, err)
			delete(boards, name)
			continue
		}
		log.Printf("Board loaded: %s (%dx%d, %d sprites)", name, b.Screen().Cols(), b.Screen().Rows(), b.Len())
	}

	sshServer := server.NewSSHServer(cfg.Listen, cfg.HostKey, boards, cfg.DefaultBoard)
	log.Printf("Starting pixelboard viewer: ssh -p %s localhost", cfg.Listen[1:])
	if err := sshServer.Start(); err != nil {
		log.Fatalf("SSH server error: %v", err)
	}
}

// demoBoard builds a small board so the server has something to show on a
// fresh install.
func demoBoard() *board.Board {
	b := board.NewBoard(24, 8, 1, 0)

	block := func(cols, rows, x, y int) *board.Sprite {
		s := board.NewSpriteAt(cols, rows, 1, 0, engine.Position{X: x, Y: y})
		for yy := 0; yy < rows; yy++ {
			for xx := 0; xx < cols; xx++ {
				if xx == 0 || xx == cols-1 || yy == 0 || yy == rows-1 {
					s.Pixels().Data().Set(engine.Position{X: xx, Y: yy}, 1)
				}
			}
		}
		return s
	}

	b.AddSprite(block(8, 5, 1, 1))
	b.AddSprite(block(6, 4, 10, 2))
	b.AddSprite(block(5, 3, 17, 4))
	return b
}

func ensureHostKey(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil // key already exists
	}

	log.Println("Generating new host key...")
	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return err
	}

	keyBytes, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return err
	}

	pemBlock := &pem.Block{
		Type:  "PRIVATE KEY",
		Bytes: keyBytes,
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	return pem.Encode(f, pemBlock)
}
