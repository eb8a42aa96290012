package exception

import "errors"

// Network submission errors. The ledger's diagnostic payload is wrapped
// around one of these sentinels verbatim, never masked or retried.
var (
	ErrNetworkSubmission = errors.New("network submission failed")
	ErrTxUnderfunded     = errors.New("transaction rejected: underfunded balance")
	ErrTxSelfTrade       = errors.New("transaction rejected: offer crosses own offer")
	ErrTxStaleSequence   = errors.New("transaction rejected: stale sequence number")
	ErrTxRejected        = errors.New("transaction rejected")
)
