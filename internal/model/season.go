package model

import "strings"

const (
	SeasonSpring = "Spring"
	SeasonSummer = "Summer"
	SeasonFall   = "Fall"
	SeasonWinter = "Winter"
)

var seasonRanks = map[string]int{
	"spring": 0,
	"summer": 1,
	"fall":   2,
	"winter": 3,
}

// SeasonRank orders seasons through the year. Unknown seasons rank after winter.
func SeasonRank(season string) int {
	if rank, ok := seasonRanks[strings.ToLower(season)]; ok {
		return rank
	}
	return len(seasonRanks)
}
