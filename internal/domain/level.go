package domain

// Level is a tier label derived purely from a balance.
type Level string

const (
	LevelNovice      Level = "novato"
	LevelContributor Level = "colaborador"
	LevelExpert      Level = "experto"
	LevelMaster      Level = "maestro"
	LevelLegend      Level = "leyenda"
)

func (l Level) String() string { return string(l) }

// LevelTier pairs a level with the minimum balance that reaches it.
type LevelTier struct {
	Level     Level
	MinPoints int
}

// LevelTiers is ordered by ascending threshold.
var LevelTiers = []LevelTier{
	{LevelNovice, 0},
	{LevelContributor, 500},
	{LevelExpert, 1000},
	{LevelMaster, 1500},
	{LevelLegend, 2000},
}

// LevelForPoints returns the highest tier whose threshold points reaches.
func LevelForPoints(points int) Level {
	level := LevelNovice
	for _, tier := range LevelTiers {
		if points >= tier.MinPoints {
			level = tier.Level
		}
	}
	return level
}

// NextLevel returns the next tier above points and how many points are
// missing. ok is false at the top tier.
func NextLevel(points int) (next Level, missing int, ok bool) {
	for _, tier := range LevelTiers {
		if points < tier.MinPoints {
			return tier.Level, tier.MinPoints - points, true
		}
	}
	return "", 0, false
}
