package game

// Ledger accumulates entry fees for one session and pays out at most once.
// The remainder after the winner share stays with the house; disbursing it
// is not this engine's job.
type Ledger struct {
	pool    float64
	share   float64
	settled bool
}

// NewLedger returns an empty ledger paying out the given winner share.
func NewLedger(share float64) *Ledger {
	return &Ledger{share: share}
}

// AddEntry credits one entry fee to the pool.
func (l *Ledger) AddEntry(price int) {
	l.pool += float64(price)
}

// Pool returns the accumulated entry fees.
func (l *Ledger) Pool() float64 {
	return l.pool
}

// Settled reports whether the prize has already been paid out.
func (l *Ledger) Settled() bool {
	return l.settled
}

// Settle computes the winner's prize. A second call is rejected.
func (l *Ledger) Settle() (float64, error) {
	if l.settled {
		return 0, &Error{Kind: KindIllegalState, Message: "prize already settled"}
	}
	l.settled = true
	return l.pool * l.share, nil
}
