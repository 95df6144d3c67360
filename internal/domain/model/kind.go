package model

// EventKind is one enumerated category of loggable play.
type EventKind string

// Event kinds. The string values are the wire names.
const (
	KindFreeThrow EventKind = "1pt"
	KindTwo       EventKind = "2pt"
	KindThree     EventKind = "3pt"

	KindGoodPass EventKind = "GoodPass"
	KindGoodShot EventKind = "GoodShot"
	KindGoodDef  EventKind = "GoodDef"
	KindHelpDef  EventKind = "HelpDef"
	KindHussle   EventKind = "Hussle"
	KindTeammate EventKind = "Teammate"

	KindBadShot  EventKind = "BadShot"
	KindTurnover EventKind = "Turnover"
	KindOpenShot EventKind = "OpenShot"

	KindRebound EventKind = "Rebound"
	KindAssist  EventKind = "Assist"
	KindSteal   EventKind = "Steal"
	KindBlock   EventKind = "Block"
)

// Category groups kinds for display.
type Category string

// Kind categories.
const (
	CategoryScoring  Category = "scoring"
	CategoryQuality  Category = "quality"
	CategoryNegative Category = "negative"
	CategoryExtended Category = "extended"
)

type kindInfo struct {
	phrase   string
	category Category
	points   int
	teamOnly bool
}

var kinds = map[EventKind]kindInfo{
	KindFreeThrow: {phrase: "made a free throw", category: CategoryScoring, points: 1},
	KindTwo:       {phrase: "made a 2pt basket", category: CategoryScoring, points: 2},
	KindThree:     {phrase: "made a 3 pointer", category: CategoryScoring, points: 3},
	KindGoodPass:  {phrase: "made a good pass", category: CategoryQuality},
	KindGoodShot:  {phrase: "took a good shot", category: CategoryQuality},
	KindGoodDef:   {phrase: "played good on-ball defense", category: CategoryQuality},
	KindHelpDef:   {phrase: "played good help defense", category: CategoryQuality},
	KindHussle:    {phrase: "made a nice hussle play", category: CategoryQuality},
	KindTeammate:  {phrase: "was a good teammate", category: CategoryQuality},
	KindBadShot:   {phrase: "Took a bad shot", category: CategoryNegative, teamOnly: true},
	KindTurnover:  {phrase: "Turned the ball over", category: CategoryNegative, teamOnly: true},
	KindOpenShot:  {phrase: "Defense gave up an open shot", category: CategoryNegative, teamOnly: true},
	KindRebound:   {phrase: "grabbed a rebound", category: CategoryExtended},
	KindAssist:    {phrase: "made an assist", category: CategoryExtended},
	KindSteal:     {phrase: "made a steal", category: CategoryExtended},
	KindBlock:     {phrase: "blocked a shot", category: CategoryExtended},
}

// kindOrder is the display order of the enumeration.
var kindOrder = []EventKind{
	KindFreeThrow, KindTwo, KindThree,
	KindGoodPass, KindGoodShot, KindGoodDef, KindHelpDef, KindHussle, KindTeammate,
	KindBadShot, KindTurnover, KindOpenShot,
	KindRebound, KindAssist, KindSteal, KindBlock,
}

// Kinds returns every event kind in display order.
func Kinds() []EventKind {
	out := make([]EventKind, len(kindOrder))
	copy(out, kindOrder)
	return out
}

// ParseKind maps a wire name to a kind.
func ParseKind(s string) (EventKind, bool) {
	k := EventKind(s)
	return k, k.Valid()
}

// Valid reports whether k belongs to the enumeration.
func (k EventKind) Valid() bool {
	_, ok := kinds[k]
	return ok
}

// Phrase is the fixed description appended to the subject phrase.
func (k EventKind) Phrase() string { return kinds[k].phrase }

// Category returns the display group of k.
func (k EventKind) Category() Category { return kinds[k].category }

// Points is 1, 2 or 3 for scoring kinds and 0 otherwise.
func (k EventKind) Points() int { return kinds[k].points }

// Scoring reports whether k adds to a score.
func (k EventKind) Scoring() bool { return kinds[k].points > 0 }

// TeamOnly reports whether k is never attributed to a subject.
func (k EventKind) TeamOnly() bool { return kinds[k].teamOnly }
