package board

import "testing"

func doUCI(t *testing.T, s *State, uci string) Move {
	t.Helper()
	source, target, promo, err := ParseUCIMove(uci)
	if err != nil {
		t.Fatalf("ParseUCIMove(%q): %v", uci, err)
	}
	var buf [MaxMoves]Move
	n := Generate(s, buf[:])
	m, ok := FindMove(buf[:n], source, target, promo)
	if !ok {
		t.Fatalf("move %q not found among generated moves", uci)
	}
	s.Do(&m)
	return m
}

func statesEqual(a, b *State) bool {
	if a.SideToMove != b.SideToMove || a.Castling != b.Castling ||
		a.EnPassant != b.EnPassant || a.Halfmove != b.Halfmove || a.Fullmove != b.Fullmove {
		return false
	}
	return a.Pos.Mailbox == b.Pos.Mailbox &&
		a.Pos.ByColorFigure == b.Pos.ByColorFigure &&
		a.Pos.ByColor == b.Pos.ByColor &&
		a.Pos.PieceCount == b.Pos.PieceCount
}

func TestDoUndoRoundTrip(t *testing.T) {
	s := NewState()
	before := *s
	beforePos := *s.Pos
	before.Pos = &beforePos

	m1 := doUCI(t, s, "e2e4")
	m2 := doUCI(t, s, "e7e5")
	m3 := doUCI(t, s, "g1f3")

	s.Undo(m3)
	s.Undo(m2)
	s.Undo(m1)

	if !statesEqual(s, &before) {
		t.Errorf("undo(do(start)) != start: got %+v, want %+v", s, &before)
	}
}

func TestDoUndoRoundTripKiwipete(t *testing.T) {
	fen := "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"
	s, err := ParseFEN(fen)
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	beforePos := *s.Pos
	before := *s
	before.Pos = &beforePos

	var buf [MaxMoves]Move
	n := Generate(s, buf[:])
	for i := 0; i < n; i++ {
		m := buf[i]
		s.Do(&m)
		s.Undo(m)
		if !statesEqual(s, &before) {
			t.Fatalf("undo(do(%v)) != original kiwipete state", m)
		}
	}
}

func TestPromotionOnlyFourMoves(t *testing.T) {
	s, err := ParseFEN("8/P7/8/8/8/8/8/k6K w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var buf [MaxMoves]Move
	n := Generate(s, buf[:])

	promos := 0
	for i := 0; i < n; i++ {
		if buf[i].Source() == RankFile(6, 0) && buf[i].Target() == RankFile(7, 0) {
			promos++
		}
	}
	if promos != 4 {
		t.Errorf("got %d promotion moves on a7a8, want 4", promos)
	}
}

func TestEnPassantCapture(t *testing.T) {
	s, err := ParseFEN("8/8/8/3pP3/8/8/8/k6K w - d6 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	var buf [MaxMoves]Move
	n := Generate(s, buf[:])

	source, target := RankFile(4, 4), RankFile(5, 3) // e5, d6
	m, ok := FindMove(buf[:n], source, target, NoFigure)
	if !ok {
		t.Fatal("e5d6 en-passant capture not generated")
	}
	if m.Flag() != FlagPawnEnPassant {
		t.Errorf("e5d6 flag = %v, want FlagPawnEnPassant", m.Flag())
	}

	s.Do(&m)
	if !s.Pos.IsEmpty(RankFile(4, 3)) { // d5 must be empty after capture
		t.Error("d5 still occupied after en-passant capture")
	}
	if got := s.Pos.At(RankFile(5, 3)); got != MakePiece(White, Pawn) {
		t.Errorf("d6 = %v, want white pawn", got)
	}
}

func TestCastlingRightsLostOnKingMove(t *testing.T) {
	s := NewState()
	m := NewMove(RankFile(0, 4), RankFile(1, 4), FlagRemoveAllCastle) // e1e2
	s.Do(&m)
	if s.Castling&(WhiteKingside|WhiteQueenside) != 0 {
		t.Errorf("castling rights not cleared after king move: %v", s.Castling)
	}
}

func TestCastlingRightsLostOnRookCapture(t *testing.T) {
	s, err := ParseFEN("4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	// Simulate a8-rook-equivalent capture by placing a black rook that
	// takes the white rook on h1, to exercise the capture-on-home-square
	// rights clearing rule.
	s.Pos.Put(RankFile(6, 7), MakePiece(Black, Rook)) // h7
	s.SideToMove = Black
	m := NewMove(RankFile(6, 7), RankFile(0, 7), FlagSilent) // h7h1
	s.Do(&m)
	if s.Castling&WhiteKingside != 0 {
		t.Errorf("WhiteKingside should be cleared once the h1 rook is captured, got %v", s.Castling)
	}
	if s.Castling&WhiteQueenside == 0 {
		t.Errorf("WhiteQueenside should survive, got %v", s.Castling)
	}
}

func TestIsChecked(t *testing.T) {
	s, err := ParseFEN("4k3/8/8/8/8/8/4r3/4K3 w - - 0 1")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if !s.IsChecked(White) {
		t.Error("White king on e1 should be in check from the rook on e2")
	}
	if s.IsChecked(Black) {
		t.Error("Black king on e8 should not be in check")
	}
}
