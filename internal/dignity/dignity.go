// Package dignity classifies a body's rulership status in a sign from the
// classical tables: rulership, exaltation, debilitation, and friendship.
// Evaluation is pure lookup; every (body, sign) combination resolves to
// exactly one status.
package dignity

import (
	"github.com/louisbranch/jyotish-engine/internal/astro"
)

// Status is a body's standing in a sign.
type Status int

const (
	StatusNeutral Status = iota
	StatusFriendly
	StatusOwnSign
	StatusExalted
	StatusDebilitated
)

func (s Status) String() string {
	switch s {
	case StatusNeutral:
		return "Neutral"
	case StatusFriendly:
		return "Friendly"
	case StatusOwnSign:
		return "OwnSign"
	case StatusExalted:
		return "Exalted"
	case StatusDebilitated:
		return "Debilitated"
	default:
		return "Unknown"
	}
}

// rulership holds one body's classical sign relations.
type rulership struct {
	own         []astro.Sign
	exalted     astro.Sign
	debilitated astro.Sign
	friendly    []astro.Sign
}

// rulerships is the classical table for the seven bodies. Friendly signs
// are the signs ruled by each body's natural friends.
var rulerships = map[astro.Body]rulership{
	astro.BodySun: {
		own:         []astro.Sign{astro.SignLeo},
		exalted:     astro.SignAries,
		debilitated: astro.SignLibra,
		friendly: []astro.Sign{
			astro.SignCancer, astro.SignScorpio, astro.SignSagittarius, astro.SignPisces,
		},
	},
	astro.BodyMoon: {
		own:         []astro.Sign{astro.SignCancer},
		exalted:     astro.SignTaurus,
		debilitated: astro.SignScorpio,
		friendly: []astro.Sign{
			astro.SignLeo, astro.SignGemini, astro.SignVirgo,
		},
	},
	astro.BodyMars: {
		own:         []astro.Sign{astro.SignAries, astro.SignScorpio},
		exalted:     astro.SignCapricorn,
		debilitated: astro.SignCancer,
		friendly: []astro.Sign{
			astro.SignLeo, astro.SignSagittarius, astro.SignPisces,
		},
	},
	astro.BodyMercury: {
		own:         []astro.Sign{astro.SignGemini, astro.SignVirgo},
		exalted:     astro.SignVirgo,
		debilitated: astro.SignPisces,
		friendly: []astro.Sign{
			astro.SignLeo, astro.SignTaurus, astro.SignLibra,
		},
	},
	astro.BodyJupiter: {
		own:         []astro.Sign{astro.SignSagittarius, astro.SignPisces},
		exalted:     astro.SignCancer,
		debilitated: astro.SignCapricorn,
		friendly: []astro.Sign{
			astro.SignLeo, astro.SignAries, astro.SignScorpio,
		},
	},
	astro.BodyVenus: {
		own:         []astro.Sign{astro.SignTaurus, astro.SignLibra},
		exalted:     astro.SignPisces,
		debilitated: astro.SignVirgo,
		friendly: []astro.Sign{
			astro.SignGemini, astro.SignCapricorn, astro.SignAquarius,
		},
	},
	astro.BodySaturn: {
		own:         []astro.Sign{astro.SignCapricorn, astro.SignAquarius},
		exalted:     astro.SignLibra,
		debilitated: astro.SignAries,
		friendly: []astro.Sign{
			astro.SignGemini, astro.SignVirgo, astro.SignTaurus,
		},
	},
}

// Evaluate returns the dignity status of a body in a sign. Exaltation and
// debilitation take precedence over rulership, which takes precedence over
// friendship; unmapped combinations are Neutral.
func Evaluate(body astro.Body, sign astro.Sign) Status {
	table, ok := rulerships[body]
	if !ok {
		return StatusNeutral
	}
	if sign == table.exalted {
		return StatusExalted
	}
	if sign == table.debilitated {
		return StatusDebilitated
	}
	for _, own := range table.own {
		if sign == own {
			return StatusOwnSign
		}
	}
	for _, friendly := range table.friendly {
		if sign == friendly {
			return StatusFriendly
		}
	}
	return StatusNeutral
}
