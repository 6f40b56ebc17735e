// Perft is a perft tool.
//
// Perft's purpose is to test, debug and benchmark move generation. It
// counts nodes, captures, en-passant captures, castles and promotions
// for given depths (usually small, 4-7) from a specific position, and
// compares the counts against known-good values.
//
// For background see https://www.chessprogramming.org/Perft.
//
// Examples:
//
// startpos:
//	$ ./perft --fen startpos --max_depth 6
//
// kiwipete:
//	$ ./perft --fen kiwipete --max_depth 5
//
// duplain:
//	$ ./perft --fen duplain --max_depth 6
//
// position5:
//	$ ./perft --fen position5 --max_depth 3
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/patwiren/chesscore/board"
)

var (
	fen        = flag.String("fen", "startpos", "position to search")
	minDepth   = flag.Int("min_depth", 1, "minimum depth to search (inclusive)")
	maxDepth   = flag.Int("max_depth", 5, "maximum depth to search (inclusive)")
	depth      = flag.Int("depth", 0, "if non zero, searches only this depth")
	splitDepth = flag.Int("split", 0, "split depth")

	splitMoves []string
)

// counters counts leafs after backtracking on a position up to a certain depth.
type counters struct {
	nodes      uint64
	captures   uint64
	enpassant  uint64
	castles    uint64
	promotions uint64
}

// Add adds ot to co.
func (co *counters) Add(ot counters) {
	co.nodes += ot.nodes
	co.captures += ot.captures
	co.enpassant += ot.enpassant
	co.castles += ot.castles
	co.promotions += ot.promotions
}

var (
	startpos  = board.FENStartPos
	kiwipete  = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	duplain   = "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"
	position5 = "rnbq1k1r/pp1Pbppp/2p5/8/2B5/8/PPP1NnPP/RNBQK2R w KQ - 1 8"

	known = map[string]string{
		"startpos":  startpos,
		"kiwipete":  kiwipete,
		"duplain":   duplain,
		"position5": position5,
	}

	data = map[string][]counters{
		startpos: {
			{1, 0, 0, 0, 0},
			{20, 0, 0, 0, 0},
			{400, 0, 0, 0, 0},
			{8902, 34, 0, 0, 0},
			{197281, 1576, 0, 0, 0},
			{4865609, 82719, 258, 0, 0},
			{119060324, 2812008, 5248, 0, 0},
		},
		kiwipete: {
			{1, 0, 0, 0, 0},
			{48, 8, 0, 2, 0},
			{2039, 351, 1, 91, 0},
			{97862, 17102, 45, 3162, 0},
			{4085603, 757163, 1929, 128013, 15172},
		},
		duplain: {
			{1, 0, 0, 0, 0},
			{14, 1, 0, 0, 0},
			{191, 14, 0, 0, 0},
			{2812, 209, 2, 0, 0},
			{43238, 3348, 123, 0, 0},
			{674624, 52051, 1165, 0, 0},
		},
	}

	// movePool holds one reusable move buffer per recursion depth so
	// perft never allocates inside the search.
	movePool [][]board.Move
)

func movesAt(depth int) []board.Move {
	for len(movePool) <= depth {
		movePool = append(movePool, make([]board.Move, board.MaxMoves))
	}
	return movePool[depth]
}

func perft(s *board.State, depth int) counters {
	if depth == 0 {
		return counters{nodes: 1}
	}

	buf := movesAt(depth)
	n := board.Generate(s, buf)

	r := counters{}
	for i := 0; i < n; i++ {
		m := buf[i]
		s.Do(&m)
		if s.IsChecked(s.SideToMove.Opposite()) {
			s.Undo(m)
			continue
		}

		if depth == 1 {
			if m.Captured != board.NoPiece {
				r.captures++
			}
			switch m.Flag() {
			case board.FlagPawnEnPassant:
				r.enpassant++
			case board.FlagShortCastle, board.FlagLongCastle:
				r.castles++
			}
			if m.Flag().IsPromotion() {
				r.promotions++
			}
		}

		r.Add(perft(s, depth-1))
		s.Undo(m)
	}
	return r
}

func split(s *board.State, depth, splitDepth int) counters {
	if depth == 0 || splitDepth == 0 {
		return perft(s, depth)
	}

	r := counters{}
	buf := movesAt(depth)
	n := board.Generate(s, buf)
	for i := 0; i < n; i++ {
		m := buf[i]
		s.Do(&m)
		if !s.IsChecked(s.SideToMove.Opposite()) {
			splitMoves = append(splitMoves, m.UCI())
			r.Add(split(s, depth-1, splitDepth-1))
			splitMoves = splitMoves[:len(splitMoves)-1]
		}
		s.Undo(m)
	}

	if len(splitMoves) != 0 {
		fmt.Printf("   %2d %12d %8d %9d %7d split %s\n",
			depth, r.nodes, r.captures, r.enpassant, r.castles, strings.Join(splitMoves, " "))
	}
	return r
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lshortfile)

	var expected []counters
	if s, has := known[*fen]; has {
		*fen = s
		expected = data[*fen]
	}
	if *depth != 0 {
		*minDepth = *depth
		*maxDepth = *depth
	}

	fmt.Printf("Searching FEN \"%s\"\n", *fen)
	s, err := board.ParseFEN(*fen)
	if err != nil {
		log.Fatalln("Cannot parse --fen:", err)
	}

	fmt.Printf("depth        nodes   captures enpassant castles   promotions eval  KNps   elapsed\n")
	fmt.Printf("-----+------------+----------+---------+---------+----------+-----+------+-------\n")

	for d := *minDepth; d <= *maxDepth; d++ {
		start := time.Now()
		c := split(s, d, *splitDepth)
		duration := time.Since(start)

		ok := ""
		if d < len(expected) {
			if c == expected[d] {
				ok = "good"
			} else {
				ok = "bad"
			}
		}

		fmt.Printf("   %2d %12d %10d %9d %9d %10d %-4s %6.f %v\n",
			d, c.nodes, c.captures, c.enpassant, c.castles, c.promotions,
			ok, float64(c.nodes)/duration.Seconds()/1e3, duration)

		if ok == "bad" {
			e := expected[d]
			fmt.Printf("   %2d %12d %10d %9d %9d %10d %s\n",
				d, e.nodes, e.captures, e.enpassant, e.castles, e.promotions,
				"expected")
			break
		}
	}
}
