package options

// Side is the direction of an option leg.
type Side string

const (
	Short Side = "short"
	Long  Side = "long"
)

// OptionType distinguishes puts from calls.
type OptionType string

const (
	Put  OptionType = "put"
	Call OptionType = "call"
)

// Leg statuses. An empty status means the leg is still active.
const (
	LegClosed  = "closed"
	LegExpired = "expired"
)

// Leg is one option contract within a trade. The YAML field names match
// the on-disk strategy record format.
type Leg struct {
	Type       OptionType `yaml:"type"`
	Ticker     string     `yaml:"ticker"`
	Side       Side       `yaml:"side"`
	Strike     float64    `yaml:"strike"`
	Expiry     string     `yaml:"expiry"` // YYYY-MM-DD
	Contracts  int        `yaml:"contracts"`
	EntryPrice float64    `yaml:"entry_price"`
	Status     string     `yaml:"status,omitempty"`
}

// Active reports whether the leg is still open (not closed or expired).
func (l Leg) Active() bool {
	return l.Status == ""
}

// Matches reports whether two legs describe the same contract and
// direction. Status is intentionally ignored.
func (l Leg) Matches(other Leg) bool {
	return l.Type == other.Type &&
		l.Strike == other.Strike &&
		l.Expiry == other.Expiry &&
		l.Side == other.Side &&
		l.Ticker == other.Ticker
}
