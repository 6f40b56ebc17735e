package board

// CastleRights is a 4-bit set of which castles are still available.
type CastleRights uint8

const (
	WhiteKingside CastleRights = 1 << iota
	WhiteQueenside
	BlackKingside
	BlackQueenside

	NoCastleRights  CastleRights = 0
	AllCastleRights              = WhiteKingside | WhiteQueenside | BlackKingside | BlackQueenside
)

// rightsLostAt[sq] is the set of castling rights permanently lost the
// moment a king or rook leaves — or a rook is captured on — sq. Applying
// it to both a move's source and target square on every Do is enough to
// implement spec's rights-update rule without special-casing on piece
// type: an empty home square contributes no bits to clear, and clearing
// an already-absent right is a no-op, so the table alone is both
// necessary and sufficient.
var rightsLostAt [64]CastleRights

func init() {
	rightsLostAt[RankFile(0, 0)] = WhiteQueenside
	rightsLostAt[RankFile(0, 4)] = WhiteKingside | WhiteQueenside
	rightsLostAt[RankFile(0, 7)] = WhiteKingside
	rightsLostAt[RankFile(7, 0)] = BlackQueenside
	rightsLostAt[RankFile(7, 4)] = BlackKingside | BlackQueenside
	rightsLostAt[RankFile(7, 7)] = BlackKingside
}

// State wraps a Position with the remaining game state that determines
// which moves are legal and how to unmake them: side to move, castling
// rights, en-passant target and the two move clocks.
type State struct {
	Pos        *Position
	SideToMove Color
	Castling   CastleRights
	EnPassant  Square
	Halfmove   int
	Fullmove   int
}

// IsChecked reports whether color c's king is attacked.
func (s *State) IsChecked(c Color) bool {
	king := s.Pos.ByPiece(c, King)
	return s.Pos.AttacksBy(c.Opposite())&king != 0
}

// epVictimSquare returns the square of the pawn captured en passant,
// given the capturing pawn's target square and color.
func epVictimSquare(target Square, mover Color) Square {
	if mover == White {
		return target - 8
	}
	return target + 8
}

// castleRookSquares returns the rook's source and destination squares
// for the castle whose king lands on kingTarget.
func castleRookSquares(kingTarget Square) (from, to Square) {
	switch kingTarget {
	case RankFile(0, 6):
		return RankFile(0, 7), RankFile(0, 5)
	case RankFile(0, 2):
		return RankFile(0, 0), RankFile(0, 3)
	case RankFile(7, 6):
		return RankFile(7, 7), RankFile(7, 5)
	case RankFile(7, 2):
		return RankFile(7, 0), RankFile(7, 3)
	}
	panic("board: not a castle king-target square")
}

func absSquareDelta(a, b Square) int {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return d
}

// Do applies m to s, mutating both s and m: m is first stamped with the
// undo data (prior castling rights, prior en-passant target, prior
// halfmove clock, captured piece) that Undo will later need, then the
// board is mutated, rights/en-passant/clocks are updated and side to
// move is toggled.
//
// Do does not validate that m is legal, or even pseudo-legal: callers
// must only Do moves obtained from Generate, or moves independently
// checked against Generate's output.
func (s *State) Do(m *Move) {
	pos := s.Pos
	mover := pos.At(m.Source())
	flag := m.Flag()

	m.PriorCastling = s.Castling
	m.PriorEnPassant = s.EnPassant
	m.PriorHalfmove = s.Halfmove
	if flag == FlagPawnEnPassant {
		m.Captured = pos.At(epVictimSquare(m.Target(), s.SideToMove))
	} else {
		m.Captured = pos.At(m.Target())
	}
	isCapture := m.Captured != NoPiece
	isPawnMove := mover.Figure() == Pawn

	switch flag {
	case FlagShortCastle, FlagLongCastle:
		pos.Remove(m.Source())
		pos.Put(m.Target(), mover)
		rookFrom, rookTo := castleRookSquares(m.Target())
		pos.Put(rookTo, pos.Remove(rookFrom))
	case FlagPawnEnPassant:
		pos.Remove(epVictimSquare(m.Target(), s.SideToMove))
		pos.Remove(m.Source())
		pos.Put(m.Target(), mover)
	case FlagPromoteQueen, FlagPromoteRook, FlagPromoteBishop, FlagPromoteKnight:
		pos.Remove(m.Source())
		if isCapture {
			pos.Remove(m.Target())
		}
		pos.Put(m.Target(), MakePiece(mover.Color(), flag.PromotionFigure()))
	default:
		pos.Remove(m.Source())
		if isCapture {
			pos.Remove(m.Target())
		}
		pos.Put(m.Target(), mover)
	}

	s.Castling &^= rightsLostAt[m.Source()] | rightsLostAt[m.Target()]

	if isPawnMove && absSquareDelta(m.Source(), m.Target()) == 16 {
		s.EnPassant = Square((int(m.Source()) + int(m.Target())) / 2)
	} else {
		s.EnPassant = NoSquare
	}

	s.Halfmove++
	if isPawnMove || isCapture {
		s.Halfmove = 0
	}
	if s.SideToMove == Black {
		s.Fullmove++
	}

	s.SideToMove = s.SideToMove.Opposite()
}

// Undo reverses m, which must be the last move Done on s (its stamped
// undo fields must come from that Do call). It is the strict inverse of
// Do, driven entirely by m: it needs no separate history stack.
func (s *State) Undo(m Move) {
	s.SideToMove = s.SideToMove.Opposite()
	pos := s.Pos
	flag := m.Flag()

	switch flag {
	case FlagShortCastle, FlagLongCastle:
		king := pos.Remove(m.Target())
		pos.Put(m.Source(), king)
		rookFrom, rookTo := castleRookSquares(m.Target())
		pos.Put(rookFrom, pos.Remove(rookTo))
	case FlagPawnEnPassant:
		pawn := pos.Remove(m.Target())
		pos.Put(m.Source(), pawn)
		pos.Put(epVictimSquare(m.Target(), s.SideToMove), m.Captured)
	case FlagPromoteQueen, FlagPromoteRook, FlagPromoteBishop, FlagPromoteKnight:
		promoted := pos.Remove(m.Target())
		pos.Put(m.Source(), MakePiece(promoted.Color(), Pawn))
		if m.Captured != NoPiece {
			pos.Put(m.Target(), m.Captured)
		}
	default:
		piece := pos.Remove(m.Target())
		pos.Put(m.Source(), piece)
		if m.Captured != NoPiece {
			pos.Put(m.Target(), m.Captured)
		}
	}

	s.Castling = m.PriorCastling
	s.EnPassant = m.PriorEnPassant
	s.Halfmove = m.PriorHalfmove
	if s.SideToMove == Black {
		s.Fullmove--
	}
}
