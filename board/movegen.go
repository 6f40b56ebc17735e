package board

// MaxMoves is an upper bound on the number of pseudo-legal moves in any
// legal position; callers must supply a buffer of at least this length
// to Generate.
const MaxMoves = 256

// Generate writes every pseudo-legal move available to the side to move
// in s into buf, starting at index 0, and returns how many it wrote.
//
// Pseudo-legal means the move respects each piece's movement rules,
// own-piece blocking, edge wraparound, castling preconditions and the
// en-passant target — but it may still leave the mover's own king in
// check. Legality is the caller's job: Do the move, ask IsChecked, Undo
// if it was illegal. Generate never allocates and never writes past
// buf; buf must have length >= MaxMoves.
func Generate(s *State, buf []Move) int {
	pos := s.Pos
	us := s.SideToMove
	occ := pos.Occupied()
	friendly := pos.ByColor[us]

	n := genPawnMoves(s, buf, 0)

	for knights := pos.ByPiece(us, Knight); knights != 0; {
		from := knights.Pop()
		n = emitSimpleMoves(buf, n, from, KnightAttacks(from)&^friendly)
	}
	for bishops := pos.ByPiece(us, Bishop); bishops != 0; {
		from := bishops.Pop()
		n = emitSimpleMoves(buf, n, from, BishopAttacks(from, occ)&^friendly)
	}
	for queens := pos.ByPiece(us, Queen); queens != 0; {
		from := queens.Pop()
		n = emitSimpleMoves(buf, n, from, QueenAttacks(from, occ)&^friendly)
	}
	for rooks := pos.ByPiece(us, Rook); rooks != 0; {
		from := rooks.Pop()
		n = emitRookMoves(buf, n, from, RookAttacks(from, occ)&^friendly)
	}

	if king := pos.King(us); king != NoSquare {
		att := KingAttacks(king) &^ friendly
		for att != 0 {
			to := att.Pop()
			buf[n] = NewMove(king, to, FlagRemoveAllCastle)
			n++
		}
		n = genCastling(s, buf, n)
	}

	return n
}

func emitSimpleMoves(buf []Move, n int, from Square, targets Bitboard) int {
	for targets != 0 {
		to := targets.Pop()
		buf[n] = NewMove(from, to, FlagSilent)
		n++
	}
	return n
}

// emitRookMoves tags a rook move leaving its own home square with the
// matching castling-rights-removal flag; Do's actual rights update is
// table-driven (state.go's rightsLostAt) and does not depend on this
// flag, but the flag still carries that information per the move
// encoding spec.md §3 describes.
func emitRookMoves(buf []Move, n int, from Square, targets Bitboard) int {
	flag := FlagSilent
	switch from {
	case RankFile(0, 0), RankFile(7, 0):
		flag = FlagRemoveLongCastle
	case RankFile(0, 7), RankFile(7, 7):
		flag = FlagRemoveShortCastle
	}
	for targets != 0 {
		to := targets.Pop()
		buf[n] = NewMove(from, to, flag)
		n++
	}
	return n
}

func pawnDiagonalDirections(c Color) [2]Direction {
	if c == White {
		return [2]Direction{NorthEast, NorthWest}
	}
	return [2]Direction{SouthEast, SouthWest}
}

func genPawnMoves(s *State, buf []Move, n int) int {
	pos := s.Pos
	us := s.SideToMove
	them := us.Opposite()
	occ := pos.Occupied()
	pushDir := pawnPushDirection(us)

	promoSource := Row(pawnPrePromotionRow(us))
	ourPawns := pos.ByPiece(us, Pawn)
	promoting := ourPawns & promoSource
	plain := ourPawns &^ promoSource

	// Single and double pushes (non-promoting).
	single := PawnSinglePush(plain, us, occ)
	for to := single; to != 0; {
		t := to.Pop()
		from := Square(int(t) - int(pushDir))
		buf[n] = NewMove(from, t, FlagSilent)
		n++
	}
	double := PawnDoublePush(single, us, occ)
	for to := double; to != 0; {
		t := to.Pop()
		from := Square(int(t) - 2*int(pushDir))
		buf[n] = NewMove(from, t, FlagPawnDoublePush)
		n++
	}

	// Captures, including en passant (non-promoting).
	enemyOrEP := pos.ByColor[them]
	if s.EnPassant != NoSquare {
		enemyOrEP |= s.EnPassant.Bitboard()
	}
	for _, dir := range pawnDiagonalDirections(us) {
		sources := plain
		if dir == NorthEast || dir == SouthEast {
			sources &^= Col(7)
		} else {
			sources &^= Col(0)
		}
		for targets := Shift(sources, dir) & enemyOrEP; targets != 0; {
			t := targets.Pop()
			from := Square(int(t) - int(dir))
			if t == s.EnPassant {
				buf[n] = NewMove(from, t, FlagPawnEnPassant)
			} else {
				buf[n] = NewMove(from, t, FlagSilent)
			}
			n++
		}
	}

	// Promotions: push and capture, four moves each in Q, R, B, N order.
	for to := PawnSinglePush(promoting, us, occ); to != 0; {
		t := to.Pop()
		from := Square(int(t) - int(pushDir))
		n = emitPromotions(buf, n, from, t)
	}
	for _, dir := range pawnDiagonalDirections(us) {
		sources := promoting
		if dir == NorthEast || dir == SouthEast {
			sources &^= Col(7)
		} else {
			sources &^= Col(0)
		}
		for targets := Shift(sources, dir) & pos.ByColor[them]; targets != 0; {
			t := targets.Pop()
			from := Square(int(t) - int(dir))
			n = emitPromotions(buf, n, from, t)
		}
	}

	return n
}

func emitPromotions(buf []Move, n int, from, to Square) int {
	for _, fig := range PromotionFigures {
		buf[n] = NewMove(from, to, promotionFlagFor[fig])
		n++
	}
	return n
}

// genCastling emits the side to move's available castles, per spec.md
// §4.D: the right must still be held, the squares between king and rook
// must be empty, and the king's current square plus every square it
// passes over or lands on must be unattacked. The b1/b8 square, which
// only the rook crosses in the long castle, is never checked for attack,
// only for occupancy.
func genCastling(s *State, buf []Move, n int) int {
	pos := s.Pos
	us := s.SideToMove
	them := us.Opposite()

	rank := 0
	kingsideRight, queensideRight := WhiteKingside, WhiteQueenside
	if us == Black {
		rank = 7
		kingsideRight, queensideRight = BlackKingside, BlackQueenside
	}
	kingSq := RankFile(rank, 4)

	if s.Castling&kingsideRight != 0 {
		f, g := RankFile(rank, 5), RankFile(rank, 6)
		if pos.IsEmpty(f) && pos.IsEmpty(g) {
			attacked := pos.AttacksBy(them)
			if attacked&(kingSq.Bitboard()|f.Bitboard()|g.Bitboard()) == 0 {
				buf[n] = NewMove(kingSq, g, FlagShortCastle)
				n++
			}
		}
	}
	if s.Castling&queensideRight != 0 {
		b, c, d := RankFile(rank, 1), RankFile(rank, 2), RankFile(rank, 3)
		if pos.IsEmpty(b) && pos.IsEmpty(c) && pos.IsEmpty(d) {
			attacked := pos.AttacksBy(them)
			if attacked&(kingSq.Bitboard()|d.Bitboard()|c.Bitboard()) == 0 {
				buf[n] = NewMove(kingSq, c, FlagLongCastle)
				n++
			}
		}
	}
	return n
}

// FindMove looks up the generated move matching a UCI (source, target,
// promotion) triple. Callers (search, UCI) must do moves obtained this
// way rather than constructing a Move by hand, since only the generator
// knows whether e.g. a king move onto g1 is a plain move or a castle.
func FindMove(moves []Move, source, target Square, promotion Figure) (Move, bool) {
	for _, m := range moves {
		if m.Matches(source, target, promotion) {
			return m, true
		}
	}
	return Move{}, false
}
