package board

import (
	"fmt"
	"strconv"
	"strings"
)

// FENStartPos is the FEN of the standard chess starting position.
const FENStartPos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewState returns a fresh State at the standard starting position. It
// panics only if the built-in starting FEN were ever broken, which a
// passing test suite rules out.
func NewState() *State {
	s, err := ParseFEN(FENStartPos)
	if err != nil {
		panic("board: invalid built-in starting FEN: " + err.Error())
	}
	return s
}

// ParseFEN parses a full six-field FEN record into a State.
func ParseFEN(fen string) (*State, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, fmt.Errorf("board: fen %q: expected 6 fields, got %d", fen, len(fields))
	}

	pos := &Position{}
	if err := parsePiecePlacement(fields[0], pos); err != nil {
		return nil, fmt.Errorf("board: fen %q: %w", fen, err)
	}

	side, err := parseSideToMove(fields[1])
	if err != nil {
		return nil, fmt.Errorf("board: fen %q: %w", fen, err)
	}
	castling, err := parseCastlingRights(fields[2])
	if err != nil {
		return nil, fmt.Errorf("board: fen %q: %w", fen, err)
	}
	ep, err := parseEnPassant(fields[3])
	if err != nil {
		return nil, fmt.Errorf("board: fen %q: %w", fen, err)
	}
	half, err := strconv.Atoi(fields[4])
	if err != nil || half < 0 {
		return nil, fmt.Errorf("board: fen %q: invalid halfmove clock %q", fen, fields[4])
	}
	full, err := strconv.Atoi(fields[5])
	if err != nil || full <= 0 {
		return nil, fmt.Errorf("board: fen %q: invalid fullmove number %q", fen, fields[5])
	}

	return &State{
		Pos:        pos,
		SideToMove: side,
		Castling:   castling,
		EnPassant:  ep,
		Halfmove:   half,
		Fullmove:   full,
	}, nil
}

func parsePiecePlacement(field string, pos *Position) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("piece placement %q: expected 8 ranks, got %d", field, len(ranks))
	}
	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0
		for _, r := range rankStr {
			switch {
			case r >= '1' && r <= '8':
				file += int(r - '0')
			default:
				pi, ok := symbolPiece[byte(r)]
				if !ok {
					return fmt.Errorf("piece placement %q: invalid symbol %q", field, r)
				}
				if file > 7 {
					return fmt.Errorf("piece placement %q: rank %d overflows", field, rank+1)
				}
				pos.Put(RankFile(rank, file), pi)
				file++
			}
		}
		if file != 8 {
			return fmt.Errorf("piece placement %q: rank %d has %d files, want 8", field, rank+1, file)
		}
	}
	return nil
}

func parseSideToMove(field string) (Color, error) {
	switch field {
	case "w":
		return White, nil
	case "b":
		return Black, nil
	}
	return NoColor, fmt.Errorf("side to move %q: must be w or b", field)
}

func parseCastlingRights(field string) (CastleRights, error) {
	if field == "-" {
		return NoCastleRights, nil
	}
	var rights CastleRights
	for _, r := range field {
		switch r {
		case 'K':
			rights |= WhiteKingside
		case 'Q':
			rights |= WhiteQueenside
		case 'k':
			rights |= BlackKingside
		case 'q':
			rights |= BlackQueenside
		default:
			return NoCastleRights, fmt.Errorf("castling rights %q: invalid symbol %q", field, r)
		}
	}
	return rights, nil
}

func parseEnPassant(field string) (Square, error) {
	if field == "-" {
		return NoSquare, nil
	}
	sq, err := ParseSquare(field)
	if err != nil {
		return NoSquare, fmt.Errorf("en-passant target %q: %w", field, err)
	}
	return sq, nil
}

// FEN renders s as a full six-field FEN record.
func (s *State) FEN() string {
	var b strings.Builder
	formatPiecePlacement(&b, s.Pos)
	b.WriteByte(' ')
	if s.SideToMove == Black {
		b.WriteByte('b')
	} else {
		b.WriteByte('w')
	}
	b.WriteByte(' ')
	b.WriteString(formatCastlingRights(s.Castling))
	b.WriteByte(' ')
	b.WriteString(s.EnPassant.String())
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(s.Halfmove))
	b.WriteByte(' ')
	b.WriteString(strconv.Itoa(s.Fullmove))
	return b.String()
}

func formatPiecePlacement(b *strings.Builder, pos *Position) {
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			pi := pos.At(RankFile(rank, file))
			if pi == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			b.WriteByte(pieceSymbol[pi])
		}
		if empty > 0 {
			b.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			b.WriteByte('/')
		}
	}
}

func formatCastlingRights(rights CastleRights) string {
	if rights == NoCastleRights {
		return "-"
	}
	var b strings.Builder
	if rights&WhiteKingside != 0 {
		b.WriteByte('K')
	}
	if rights&WhiteQueenside != 0 {
		b.WriteByte('Q')
	}
	if rights&BlackKingside != 0 {
		b.WriteByte('k')
	}
	if rights&BlackQueenside != 0 {
		b.WriteByte('q')
	}
	return b.String()
}
