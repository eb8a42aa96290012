package adapter

import (
	"main/internal/adapter/enum"

	"github.com/shopspring/decimal"
)

// DepthLevel is one resting price point of the book.
type DepthLevel struct {
	Price  decimal.Decimal
	Amount decimal.Decimal
}

// Depth is a point-in-time snapshot of both book sides.
// Levels are ordered best price first; price never improves as index grows.
type Depth struct {
	Pair AssetPair
	Bids []DepthLevel
	Asks []DepthLevel
}

func (d Depth) Side(side enum.BookSide) []DepthLevel {
	switch side {
	case enum.BookSideBids:
		return d.Bids
	case enum.BookSideAsks:
		return d.Asks
	default:
		return nil
	}
}

// Debug returns a human readable format string
func (d Depth) Debug() string {
	appendSide := func(buf []byte, rows []DepthLevel) []byte {
		buf = append(buf, '[')
		for i, row := range rows {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = append(buf, '(')
			buf = append(buf, row.Price.String()...)
			buf = append(buf, ',')
			buf = append(buf, row.Amount.String()...)
			buf = append(buf, ')')
		}
		buf = append(buf, ']')
		return buf
	}

	buf := make([]byte, 0, 256)
	buf = append(buf, "Depth{pair="...)
	buf = append(buf, d.Pair.Selling.String()...)
	buf = append(buf, '/')
	buf = append(buf, d.Pair.Buying.String()...)
	buf = append(buf, " bids="...)
	buf = appendSide(buf, d.Bids)
	buf = append(buf, " asks="...)
	buf = appendSide(buf, d.Asks)
	buf = append(buf, '}')
	return string(buf)
}
