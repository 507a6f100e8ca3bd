// Command boardview renders bitmap, sprite and board records to stdout and
// moves boards in and out of the local board store.
//
//	boardview -bitmap art.json          render a bitmap record
//	boardview -sprite ship.json         render a sprite record
//	boardview -board level.json         compose and render a board record
//	boardview -board level.json -save x import the board into the store
//	boardview -name x                   render a stored board
//	boardview -list                     list stored board names
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	"pixelboard/internal/board"
	"pixelboard/internal/record"
	"pixelboard/internal/store"
)

func main() {
	log.SetFlags(log.Ltime | log.Lshortfile)

	bitmapPath := flag.String("bitmap", "", "path to a bitmap record")
	spritePath := flag.String("sprite", "", "path to a sprite record")
	boardPath := flag.String("board", "", "path to a board record")
	saveName := flag.String("save", "", "store the loaded board under this name")
	loadName := flag.String("name", "", "render the stored board with this name")
	list := flag.Bool("list", false, "list stored board names")
	appName := flag.String("app", "pixelboard", "application name for the board store")
	flag.Parse()

	switch {
	case *bitmapPath != "":
		bm, err := record.LoadBitmapFile(*bitmapPath)
		if err != nil {
			log.Fatalf("Load bitmap: %v", err)
		}
		fmt.Printf("Bitmap %dx%d:\n%s", bm.Cols(), bm.Rows(), bm.Render())

	case *spritePath != "":
		s, err := record.LoadSpriteFile(*spritePath)
		if err != nil {
			log.Fatalf("Load sprite: %v", err)
		}
		fmt.Printf("Sprite at %s:\n%s", s.Pos(), s.Render())

	case *boardPath != "":
		b, err := record.LoadBoardFile(*boardPath)
		if err != nil {
			log.Fatalf("Load board: %v", err)
		}
		showBoard(b)
		if *saveName != "" {
			st := openStore(*appName)
			if err := st.Save(*saveName, b); err != nil {
				log.Fatalf("Save board: %v", err)
			}
			fmt.Printf("Stored as %q\n", *saveName)
		}

	case *loadName != "":
		st := openStore(*appName)
		b, err := st.Load(*loadName)
		if err != nil {
			log.Fatalf("Load stored board: %v", err)
		}
		showBoard(b)

	case *list:
		st := openStore(*appName)
		names := st.Names()
		if len(names) == 0 {
			fmt.Println("No stored boards.")
			return
		}
		for _, name := range names {
			fmt.Println(name)
		}

	default:
		flag.Usage()
	}
}

// showBoard recomposes and prints a board. A composition failure is
// reported, not rendered: the board record broke the no-overlap invariant.
func showBoard(b *board.Board) {
	if err := b.Update(); err != nil {
		if errors.Is(err, board.ErrInvariant) {
			log.Fatalf("Board record is inconsistent: %v", err)
		}
		log.Fatalf("Compose board: %v", err)
	}
	fmt.Printf("Board %dx%d, %d sprites:\n%s", b.Screen().Cols(), b.Screen().Rows(), b.Len(), b.Render())
}

func openStore(appName string) *store.BoardStore {
	st, err := store.Open(appName)
	if err != nil {
		log.Fatalf("Open board store: %v", err)
	}
	return st
}
