package enum

// OrderSide buy, sell
type OrderSide uint8

const (
	_order_side_beg OrderSide = iota
	OrderSideBuy
	OrderSideSell
	_order_side_end
)

func (s OrderSide) IsAvailable() bool {
	return s > _order_side_beg && s < _order_side_end
}

func (s OrderSide) String() string {
	switch s {
	case OrderSideBuy:
		return "buy"
	case OrderSideSell:
		return "sell"
	default:
		return "unknown"
	}
}

// BookSide bids, asks
type BookSide uint8

const (
	_book_side_beg BookSide = iota
	BookSideBids
	BookSideAsks
	_book_side_end
)

func (s BookSide) IsAvailable() bool {
	return s > _book_side_beg && s < _book_side_end
}

// OfferStatus open, cancelled, filled
type OfferStatus uint8

const (
	_offer_status_beg OfferStatus = iota
	OfferStatusOpen
	OfferStatusCancelled
	OfferStatusFilled
	_offer_status_end
)

func (s OfferStatus) IsAvailable() bool {
	return s > _offer_status_beg && s < _offer_status_end
}
