package state

import "errors"

// RiskCeiling bounds the political, HUAC, and blacklist risk
// accumulators when a caller opts into clamping via ClampRisk. The
// accumulators are unbounded by default; the original design lets them
// spiral, so the bound is exposed here rather than applied silently.
const RiskCeiling = 500.0

var (
	// ErrInvalidYear indicates a calendar year outside the simulated range.
	ErrInvalidYear = errors.New("year must be within 1933-2010")
	// ErrInvalidMonth indicates a calendar month outside 1-12.
	ErrInvalidMonth = errors.New("month must be within 1-12")
)

// Date is a calendar position within the simulated timeline.
type Date struct {
	Year  int `json:"year" yaml:"year"`
	Month int `json:"month" yaml:"month"`
}

// NewDate validates and returns a calendar position.
func NewDate(year, month int) (Date, error) {
	if year < 1933 || year > 2010 {
		return Date{}, ErrInvalidYear
	}
	if month < 1 || month > 12 {
		return Date{}, ErrInvalidMonth
	}
	return Date{Year: year, Month: month}, nil
}

// Next returns the following calendar month.
func (d Date) Next() Date {
	if d.Month >= 12 {
		return Date{Year: d.Year + 1, Month: 1}
	}
	return Date{Year: d.Year, Month: d.Month + 1}
}

// Before reports whether d precedes other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	return d.Month < other.Month
}

// Film is a production, either shooting or released.
type Film struct {
	ID              string  `json:"id"`
	Title           string  `json:"title"`
	Genre           string  `json:"genre"`
	Budget          float64 `json:"budget"`
	Quality         float64 `json:"quality"`
	CensorRisk      float64 `json:"censor_risk"`
	BoxOffice       float64 `json:"box_office"`
	MonthsRemaining int     `json:"months_remaining"`
	DelayDays       int     `json:"delay_days"`
	Started         Date    `json:"started"`
}

// Contract is a talent contract held by the studio.
type Contract struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Role      string  `json:"role"`
	Gender    string  `json:"gender"`
	StarPower float64 `json:"star_power"`
	Salary    float64 `json:"salary"`
}

// Loan is an outstanding studio loan.
type Loan struct {
	Amount       float64 `json:"amount" yaml:"amount"`
	InterestRate float64 `json:"interest_rate" yaml:"interest_rate"`
	TermMonths   int     `json:"term_months" yaml:"term_months"`
}

// MonthlyInterest returns one month of simple interest on the loan.
func (l Loan) MonthlyInterest() float64 {
	return l.Amount * l.InterestRate / 12
}

// HistoryRecord is an append-only log entry for events, crises, and
// scandals.
type HistoryRecord struct {
	ID    string `json:"id"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Title string `json:"title"`
}

// GameState is the mutable record all engines read and write.
type GameState struct {
	GameYear    int     `json:"game_year"`
	CurrentDate Date    `json:"current_date"`
	Cash        float64 `json:"cash"`
	Reputation  float64 `json:"reputation"`

	CensorshipActive bool `json:"censorship_active"`
	WarActive        bool `json:"war_active"`
	HUACActive       bool `json:"huac_active"`
	BlacklistActive  bool `json:"blacklist_active"`
	GameComplete     bool `json:"game_complete"`

	PoliticalRisk float64 `json:"political_risk"`
	HUACRisk      float64 `json:"huac_risk"`
	BlacklistRisk float64 `json:"blacklist_risk"`
	MonthlyBurn   float64 `json:"monthly_burn"`

	ActiveFilms     []*Film    `json:"active_films"`
	CompletedFilms  []*Film    `json:"completed_films"`
	ContractPlayers []Contract `json:"contract_players"`
	Loans           []Loan     `json:"loans"`

	HistoricalEvents []HistoryRecord `json:"historical_events"`
	Crises           []HistoryRecord `json:"crises"`
	Scandals         []HistoryRecord `json:"scandals"`

	LongTermEffects   []string `json:"long_term_effects"`
	BlacklistedTalent []string `json:"blacklisted_talent"`
}

// New creates a fresh session state positioned at the given start date.
func New(start Date, startingCash float64) *GameState {
	return &GameState{
		GameYear:    start.Year,
		CurrentDate: start,
		Cash:        startingCash,
		Reputation:  50,
	}
}

// LatestFilm returns the most recently greenlit production, or nil when
// nothing is shooting.
func (gs *GameState) LatestFilm() *Film {
	if len(gs.ActiveFilms) == 0 {
		return nil
	}
	return gs.ActiveFilms[len(gs.ActiveFilms)-1]
}

// AddLongTermEffect records a long-term effect tag once.
func (gs *GameState) AddLongTermEffect(tag string) {
	for _, existing := range gs.LongTermEffects {
		if existing == tag {
			return
		}
	}
	gs.LongTermEffects = append(gs.LongTermEffects, tag)
}

// HasLongTermEffect reports whether the tag has been recorded.
func (gs *GameState) HasLongTermEffect(tag string) bool {
	for _, existing := range gs.LongTermEffects {
		if existing == tag {
			return true
		}
	}
	return false
}

// AddBlacklistedTalent records a talent name on the in-fiction
// blacklist once.
func (gs *GameState) AddBlacklistedTalent(name string) {
	for _, existing := range gs.BlacklistedTalent {
		if existing == name {
			return
		}
	}
	gs.BlacklistedTalent = append(gs.BlacklistedTalent, name)
}

// RemoveContract drops a talent contract by id. It reports whether a
// contract was removed.
func (gs *GameState) RemoveContract(id string) bool {
	for i, contract := range gs.ContractPlayers {
		if contract.ID == id {
			gs.ContractPlayers = append(gs.ContractPlayers[:i], gs.ContractPlayers[i+1:]...)
			return true
		}
	}
	return false
}

// Clamp returns value restricted to [lo, hi].
func Clamp(value, lo, hi float64) float64 {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// ClampRisk restricts a risk accumulator to [0, RiskCeiling]. Callers
// that want the original unbounded behavior simply never call it.
func ClampRisk(value float64) float64 {
	return Clamp(value, 0, RiskCeiling)
}
