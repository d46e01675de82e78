// Package lottery holds the lucky draw state: the people in the pool, the
// prizes with their remaining stock and the winners drawn so far.
package lottery

import (
	"errors"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	ErrBusy           = errors.New("a draw is in progress")
	ErrNoPeople       = errors.New("no people to draw from")
	ErrNoPrizes       = errors.New("no prizes defined")
	ErrNoPrize        = errors.New("no prize selected")
	ErrPrizeExhausted = errors.New("selected prize has no items left")
)

const drawAll = "all"

type Engine struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time

	people         []Person
	prizes         []Prize
	results        []Result // newest first
	selectedPrize  string
	excludeWinners bool
	drawCount      string

	busy    bool
	pending []Pending
}

type Option func(*Engine)

// WithRand fixes the random source, mainly for tests.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithExcludeWinners(exclude bool) Option {
	return func(e *Engine) { e.excludeWinners = exclude }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		rng:            rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		now:            time.Now,
		excludeWinners: true,
		drawCount:      "1",
	}
	for _, opt := range opts {
		opt(e)
	}
	e.prizes = buildPrizes(DefaultPrizes())
	e.selectedPrize = e.prizes[0].ID
	return e
}

func buildPrizes(specs []PrizeSpec) []Prize {
	prizes := make([]Prize, 0, len(specs))
	for _, spec := range specs {
		prizes = append(prizes, newPrize(spec))
	}
	return prizes
}

func buildPeople(names []string) []Person {
	people := make([]Person, 0, len(names))
	for _, name := range names {
		people = append(people, Person{ID: newID(), Name: name})
	}
	return people
}

// ImportPeople replaces the pool. Wins, results and prize stock are reset.
func (e *Engine) ImportPeople(names []string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.busy {
		return ErrBusy
	}
	if len(names) == 0 {
		return ErrNoPeople
	}

	e.people = buildPeople(names)
	e.results = nil
	for i := range e.prizes {
		e.prizes[i].Remaining = e.prizes[i].Total
	}
	e.ensureSelectedPrize()
	return nil
}

// ImportPrizes replaces the prize list and selects its first entry.
// Wins and results are reset.
func (e *Engine) ImportPrizes(specs []PrizeSpec) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.busy {
		return ErrBusy
	}
	if len(specs) == 0 {
		return ErrNoPrizes
	}

	e.prizes = buildPrizes(specs)
	e.selectedPrize = e.prizes[0].ID
	e.results = nil
	for i := range e.people {
		e.people[i].Wins = 0
	}
	return nil
}

// ImportRoster replaces both lists at once. An empty prize list falls back to
// DefaultPrizes.
func (e *Engine) ImportRoster(names []string, specs []PrizeSpec) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.busy {
		return ErrBusy
	}
	if len(names) == 0 {
		return ErrNoPeople
	}
	if len(specs) == 0 {
		specs = DefaultPrizes()
	}

	e.people = buildPeople(names)
	e.prizes = buildPrizes(specs)
	e.selectedPrize = e.prizes[0].ID
	e.results = nil
	e.ensureSelectedPrize()
	return nil
}

// UpdatePrizeTotal sets a new total from user input, read up to the first
// non-digit ("2.5" is 2). Unparseable or
// non-positive input keeps the current total, and the total never drops
// below the number of items already drawn.
func (e *Engine) UpdatePrizeTotal(prizeID, totalText string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.prizeIndex(prizeID)
	if i < 0 {
		return
	}
	prize := &e.prizes[i]
	drawn := prize.Drawn()

	next := prize.Total
	if n, ok := parseLeadingInt(totalText); ok && n > 0 {
		next = n
	}
	next = max(drawn, next)

	prize.Total = next
	prize.Remaining = next - drawn
	e.ensureSelectedPrize()
}

// Reset clears wins and results and refills every prize.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.busy {
		return ErrBusy
	}
	e.pending = nil
	for i := range e.people {
		e.people[i].Wins = 0
	}
	for i := range e.prizes {
		e.prizes[i].Remaining = e.prizes[i].Total
	}
	e.results = nil
	e.ensureSelectedPrize()
	return nil
}

func (e *Engine) SelectPrize(prizeID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.selectedPrize = prizeID
	e.ensureSelectedPrize()
}

func (e *Engine) SetExcludeWinners(exclude bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.excludeWinners = exclude
}

// SetDrawCount accepts "all" or text starting with a positive integer
// ("3 people" draws 3). Anything else means 1.
func (e *Engine) SetDrawCount(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	text = strings.TrimSpace(text)
	if text == "" {
		text = "1"
	}
	e.drawCount = text
}

func (e *Engine) DrawCount() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.drawCount
}

func (e *Engine) ExcludeWinners() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.excludeWinners
}

func (e *Engine) Busy() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.busy
}

func (e *Engine) People() []Person {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Person(nil), e.people...)
}

func (e *Engine) Prizes() []Prize {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Prize(nil), e.prizes...)
}

// SelectedPrize returns the current prize, or false if none is selected.
func (e *Engine) SelectedPrize() (Prize, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.prizeIndex(e.selectedPrize)
	if i < 0 {
		return Prize{}, false
	}
	return e.prizes[i], true
}

// Results returns the winners, newest first.
func (e *Engine) Results() []Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]Result(nil), e.results...)
}

// ResultsChronological returns the winners, oldest first, the order used for export.
func (e *Engine) ResultsChronological() []Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Result, len(e.results))
	for i, r := range e.results {
		out[len(e.results)-1-i] = r
	}
	return out
}

func (e *Engine) RemainingPeople() []Person {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remainingPeople()
}

// CanDraw explains why a draw is not possible, or returns nil.
func (e *Engine) CanDraw() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.canDraw()
}

// ResolveDrawCount is the number of winners the next draw would pick.
func (e *Engine) ResolveDrawCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.prizeIndex(e.selectedPrize)
	if i < 0 {
		return 1
	}
	return e.resolveDrawCount(e.prizes[i], len(e.remainingPeople()))
}

// PrepareBatch picks the winners for the selected prize and marks the engine
// busy until FinalizeBatch or CancelBatch.
func (e *Engine) PrepareBatch() ([]Pending, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.busy {
		return nil, ErrBusy
	}
	if err := e.canDraw(); err != nil {
		return nil, err
	}

	candidates := e.remainingPeople()
	prize := e.prizes[e.prizeIndex(e.selectedPrize)]
	count := e.resolveDrawCount(prize, len(candidates))

	e.pending = e.pick(candidates, prize.ID, count)
	e.busy = true
	return append([]Pending(nil), e.pending...), nil
}

// FinalizeBatch commits the prepared winners and returns the new results in
// draw order. Entries that are no longer valid are skipped.
func (e *Engine) FinalizeBatch() []Result {
	e.mu.Lock()
	defer e.mu.Unlock()

	batch := e.pending
	e.pending = nil
	e.busy = false

	added := make([]Result, 0, len(batch))
	for _, p := range batch {
		pi := e.personIndex(p.PersonID)
		zi := e.prizeIndex(p.PrizeID)
		if pi < 0 || zi < 0 || e.prizes[zi].Remaining <= 0 {
			continue
		}
		if e.excludeWinners && e.people[pi].Wins > 0 {
			continue
		}

		e.people[pi].Wins++
		e.prizes[zi].Remaining--
		result := Result{
			ID:         newID(),
			PersonName: e.people[pi].Name,
			PrizeName:  e.prizes[zi].Name,
			Timestamp:  e.now(),
		}
		e.results = append([]Result{result}, e.results...)
		added = append(added, result)
	}

	e.ensureSelectedPrize()
	return added
}

// CancelBatch drops a prepared batch without recording anyone.
func (e *Engine) CancelBatch() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.pending = nil
	e.busy = false
}

// Draw prepares and commits a batch in one step.
func (e *Engine) Draw() ([]Result, error) {
	if _, err := e.PrepareBatch(); err != nil {
		return nil, err
	}
	return e.FinalizeBatch(), nil
}

func (e *Engine) remainingPeople() []Person {
	if !e.excludeWinners {
		return append([]Person(nil), e.people...)
	}
	out := make([]Person, 0, len(e.people))
	for _, p := range e.people {
		if p.Wins == 0 {
			out = append(out, p)
		}
	}
	return out
}

func (e *Engine) canDraw() error {
	if len(e.remainingPeople()) == 0 {
		return ErrNoPeople
	}
	i := e.prizeIndex(e.selectedPrize)
	if i < 0 {
		return ErrNoPrize
	}
	if e.prizes[i].Remaining <= 0 {
		return ErrPrizeExhausted
	}
	return nil
}

func (e *Engine) resolveDrawCount(prize Prize, candidates int) int {
	raw := strings.ToLower(strings.TrimSpace(e.drawCount))

	desired := 1
	if raw == drawAll {
		desired = prize.Remaining
	} else if n, ok := parseLeadingInt(raw); ok && n > 0 {
		desired = n
	}

	limit := math.MaxInt
	if e.excludeWinners {
		limit = candidates
	}
	return max(1, min(desired, prize.Remaining, limit))
}

// pick samples without replacement when winners are excluded, so a batch never
// repeats a person; otherwise each pick is independent.
func (e *Engine) pick(candidates []Person, prizeID string, count int) []Pending {
	if len(candidates) == 0 || count <= 0 {
		return nil
	}

	out := make([]Pending, 0, count)
	if e.excludeWinners {
		order := e.rng.Perm(len(candidates))
		for _, idx := range order[:min(count, len(order))] {
			out = append(out, Pending{PersonID: candidates[idx].ID, PrizeID: prizeID, Index: idx})
		}
		return out
	}

	for range count {
		idx := e.rng.IntN(len(candidates))
		out = append(out, Pending{PersonID: candidates[idx].ID, PrizeID: prizeID, Index: idx})
	}
	return out
}

// ensureSelectedPrize moves the selection to the first prize with stock when
// the current one is missing or exhausted.
func (e *Engine) ensureSelectedPrize() {
	if i := e.prizeIndex(e.selectedPrize); i >= 0 && e.prizes[i].Remaining > 0 {
		return
	}
	for _, p := range e.prizes {
		if p.Remaining > 0 {
			e.selectedPrize = p.ID
			return
		}
	}
	if len(e.prizes) > 0 {
		e.selectedPrize = e.prizes[0].ID
		return
	}
	e.selectedPrize = ""
}

func (e *Engine) prizeIndex(id string) int {
	for i, p := range e.prizes {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) personIndex(id string) int {
	for i, p := range e.people {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// parseLeadingInt reads an optionally signed run of digits at the start of s,
// after leading spaces. Trailing text is ignored. Overflow saturates.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if errors.Is(err, strconv.ErrRange) {
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	return n, err == nil
}
