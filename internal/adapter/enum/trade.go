package enum

// TradeAction buy, sell, cancel, list open
type TradeAction uint8

const (
	_trade_action_beg TradeAction = iota
	TradeActionBuy
	TradeActionSell
	TradeActionCancel
	TradeActionListOpen
	_trade_action_end
)

func (a TradeAction) IsAvailable() bool {
	return a > _trade_action_beg && a < _trade_action_end
}

func (a TradeAction) String() string {
	switch a {
	case TradeActionBuy:
		return "buy"
	case TradeActionSell:
		return "sell"
	case TradeActionCancel:
		return "cancel"
	case TradeActionListOpen:
		return "list_open"
	default:
		return "unknown"
	}
}

// TxStage built, signed, submitted, confirmed, failed
type TxStage uint8

const (
	_tx_stage_beg TxStage = iota
	TxStageBuilt
	TxStageSigned
	TxStageSubmitted
	TxStageConfirmed
	TxStageFailed
	_tx_stage_end
)

func (s TxStage) IsAvailable() bool {
	return s > _tx_stage_beg && s < _tx_stage_end
}

func (s TxStage) IsTerminal() bool {
	return s == TxStageConfirmed || s == TxStageFailed
}

func (s TxStage) String() string {
	switch s {
	case TxStageBuilt:
		return "built"
	case TxStageSigned:
		return "signed"
	case TxStageSubmitted:
		return "submitted"
	case TxStageConfirmed:
		return "confirmed"
	case TxStageFailed:
		return "failed"
	default:
		return "unknown"
	}
}
