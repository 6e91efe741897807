package shogi

import (
	"fmt"
	"strconv"
	"strings"
)

// SFENStartPos is the SFEN string for the standard initial position.
const SFENStartPos = "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL b - 1"

// handOrder is the conventional SFEN hand listing, strongest first.
var handOrder = [HandKindNB]PieceKind{Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}

// ParseSFEN parses an SFEN string into a new Position. The move-number
// field may be omitted.
func ParseSFEN(sfen string) (*Position, error) {
	fields := strings.Fields(sfen)
	if len(fields) < 3 {
		return nil, fmt.Errorf("bad sfen %q: want at least board, side and hands", sfen)
	}

	pos := NewPosition()

	ranks := strings.Split(fields[0], "/")
	if len(ranks) != RankNB {
		return nil, fmt.Errorf("bad sfen board %q: want %d ranks", fields[0], RankNB)
	}
	for r, row := range ranks {
		c := 0
		promoted := false
		for i := 0; i < len(row); i++ {
			ch := row[i]
			switch {
			case ch >= '1' && ch <= '9':
				if promoted {
					return nil, fmt.Errorf("bad sfen rank %q: dangling promotion mark", row)
				}
				c += int(ch - '0')
			case ch == '+':
				promoted = true
			default:
				upper := ch &^ 0x20
				kind := kindFromLetter(upper)
				if kind == KindNone {
					return nil, fmt.Errorf("bad sfen piece char: %c", ch)
				}
				if promoted {
					kind = Promote(kind)
					if kind == Gold || kind == King {
						return nil, fmt.Errorf("bad sfen rank %q: %c cannot promote", row, ch)
					}
					promoted = false
				}
				color := Black
				if ch >= 'a' {
					color = White
				}
				if c >= FileNB {
					return nil, fmt.Errorf("bad sfen rank %q: too many squares", row)
				}
				pos.SetPiece(NewSquare(FileNB-1-c, r), MakePiece(color, kind))
				c++
			}
		}
		if c != FileNB {
			return nil, fmt.Errorf("bad sfen rank %q: covers %d files", row, c)
		}
	}

	switch fields[1] {
	case "b":
		pos.Side = Black
	case "w":
		pos.Side = White
	default:
		return nil, fmt.Errorf("bad sfen side %q", fields[1])
	}

	if fields[2] != "-" {
		count := 0
		for i := 0; i < len(fields[2]); i++ {
			ch := fields[2][i]
			if ch >= '0' && ch <= '9' {
				count = count*10 + int(ch-'0')
				continue
			}
			kind := kindFromLetter(ch &^ 0x20)
			if kind == KindNone || kind == King {
				return nil, fmt.Errorf("bad sfen hand char: %c", ch)
			}
			color := Black
			if ch >= 'a' {
				color = White
			}
			if count == 0 {
				count = 1
			}
			if pos.Hands[color].Count(kind)+count > int(MaxHandCount[handIndex(kind)]) {
				return nil, fmt.Errorf("bad sfen hands %q: too many %c", fields[2], ch)
			}
			pos.Hands[color].Add(kind, count)
			count = 0
		}
		if count != 0 {
			return nil, fmt.Errorf("bad sfen hands %q: trailing count", fields[2])
		}
	}

	pos.Ply = 1
	if len(fields) >= 4 {
		n, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, fmt.Errorf("bad sfen move number %q", fields[3])
		}
		pos.Ply = n
	}

	return pos, nil
}

// SFEN renders the position back into SFEN form.
func (p *Position) SFEN() string {
	var sb strings.Builder

	for r := 0; r < RankNB; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for c := 0; c < FileNB; c++ {
			pc := p.Board[NewSquare(FileNB-1-c, r)]
			if pc == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			kind := pc.Kind()
			if base := Demote(kind); base != kind {
				sb.WriteByte('+')
				kind = base
			}
			letter := kindLetters[kind]
			if pc.Color() == White {
				letter |= 0x20
			}
			sb.WriteByte(letter)
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}

	if p.Side == Black {
		sb.WriteString(" b ")
	} else {
		sb.WriteString(" w ")
	}

	if p.Hands[Black].IsEmpty() && p.Hands[White].IsEmpty() {
		sb.WriteByte('-')
	} else {
		for c := Black; c < ColorNB; c++ {
			for _, kind := range handOrder {
				n := p.Hands[c].Count(kind)
				if n == 0 {
					continue
				}
				if n > 1 {
					sb.WriteString(strconv.Itoa(n))
				}
				letter := kindLetters[kind]
				if c == White {
					letter |= 0x20
				}
				sb.WriteByte(letter)
			}
		}
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.Ply))
	return sb.String()
}
