package visibility

// Rule is one edge of the state machine, as drawn in diagrams.
type Rule struct {
	From  State
	To    State
	Label string
}

// Transitions returns the state machine's edges.
func Transitions() []Rule {
	return []Rule{
		{Closed, Open, "open (measured)"},
		{Closed, PendingMeasurement, "open (first time)\nmeasure + settle"},
		{PendingMeasurement, Open, "settled and measured\nresolve"},
		{PendingMeasurement, Closed, "close"},
		{Open, Closed, "close / dismiss"},
		{Open, Open, "reposition\nresolve"},
	}
}

// States returns every state in diagram order.
func States() []State { return []State{Closed, PendingMeasurement, Open} }
