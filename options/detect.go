package options

// Strategy names recognized by DetectStrategy.
const (
	StrategyShortPut      = "Short Put"
	StrategyShortCall     = "Short Call"
	StrategyPutVertical   = "Put Vertical"
	StrategyPutSpread     = "Put Spread"
	StrategyCallVertical  = "Call Vertical"
	StrategyCallSpread    = "Call Spread"
	StrategyStrangle      = "Strangle"
	StrategyIronCondor    = "Iron Condor"
	StrategyRatioSpread   = "Ratio Spread (1-1-2)"
	StrategyCalendar112   = "Calendar 1-1-2"
	StrategyBrokenWingPut = "Broken Wing Put Condor"
	StrategyUnnamed       = "Unnamed"
)

// DetectStrategy classifies a set of legs by the common short-premium
// structures. Unrecognized shapes come back as "Unnamed" so the record
// can still be tracked and renamed by hand.
func DetectStrategy(legs []Leg) string {
	var puts, calls, shorts, longs []Leg
	for _, leg := range legs {
		if leg.Type == Put {
			puts = append(puts, leg)
		} else {
			calls = append(calls, leg)
		}
		if leg.Side == Short {
			shorts = append(shorts, leg)
		} else {
			longs = append(longs, leg)
		}
	}

	expiries := map[string]bool{}
	for _, leg := range legs {
		expiries[leg.Expiry] = true
	}

	// Calendar 1-1-2: two short puts at one strike expiring no later
	// than the long put (possibly across contract months).
	if len(legs) == 3 && len(puts) == 3 && len(shorts) == 2 && len(longs) == 1 {
		shortStrikes := map[float64]bool{}
		for _, leg := range shorts {
			shortStrikes[leg.Strike] = true
		}
		longExpiry := longs[0].Expiry
		allBefore := true
		for _, leg := range shorts {
			if leg.Expiry > longExpiry {
				allBefore = false
			}
		}
		if len(shortStrikes) == 1 && allBefore {
			return StrategyCalendar112
		}
	}

	if len(legs) == 2 && len(shorts) == 2 && len(puts) == 1 && len(calls) == 1 {
		return StrategyStrangle
	}

	if len(legs) == 1 && len(shorts) == 1 {
		if len(puts) == 1 {
			return StrategyShortPut
		}
		return StrategyShortCall
	}

	if len(legs) == 2 {
		if len(puts) == 2 {
			if len(shorts) == 1 {
				return StrategyPutVertical
			}
			return StrategyPutSpread
		}
		if len(calls) == 2 {
			if len(shorts) == 1 {
				return StrategyCallVertical
			}
			return StrategyCallSpread
		}
	}

	// All-put condor at four distinct strikes in a single expiry.
	if len(puts) == 4 && len(shorts) == 2 && len(longs) == 2 && len(expiries) == 1 {
		strikes := map[float64]bool{}
		for _, leg := range puts {
			strikes[leg.Strike] = true
		}
		if len(strikes) == 4 {
			return StrategyBrokenWingPut
		}
	}

	if len(legs) == 4 && len(puts) > 0 && len(calls) > 0 {
		return StrategyIronCondor
	}

	if len(legs) == 3 && len(shorts) == 2 && len(longs) == 1 {
		shortPuts := 0
		sameExpiry := true
		for _, leg := range shorts {
			if leg.Type == Put {
				shortPuts++
			}
			if leg.Expiry != shorts[0].Expiry {
				sameExpiry = false
			}
		}
		if shortPuts == 2 && len(longs) == 1 && longs[0].Type == Put && sameExpiry {
			return StrategyRatioSpread
		}
	}

	return StrategyUnnamed
}
