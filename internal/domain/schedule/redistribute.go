package schedule

import (
	"sort"
	"time"
)

// Mode selects the redistribution strategy.
type Mode string

const (
	// ModeLegacy places each missed item, in worklist order, on the nearest
	// unlocked future day with any free capacity. No priority reordering and
	// no time-slot conflict resolution.
	ModeLegacy Mode = "legacy"

	// ModeEnhanced sorts the worklist by priority and places each item into
	// the earliest unlocked future slot that has capacity and does not
	// overlap existing sessions or fixed commitments, splitting across days
	// when no single day can hold the full duration.
	ModeEnhanced Mode = "enhanced"
)

// ParseMode validates a mode selector string.
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeLegacy, ModeEnhanced:
		return Mode(s), true
	}
	return "", false
}

// Placement records one new session created at a destination day, with a
// back-reference to the missed session it carries forward.
type Placement struct {
	TaskID              string  `json:"task_id"`
	Date                string  `json:"date"`
	SessionNumber       int     `json:"session_number"`
	StartTime           string  `json:"start_time"`
	EndTime             string  `json:"end_time"`
	Hours               float64 `json:"hours"`
	SourceDate          string  `json:"source_date"`
	SourceSessionNumber int     `json:"source_session_number"`
}

// UnplacedItem is a worklist entry the engine could not (fully) place.
type UnplacedItem struct {
	Item           MissedItem
	RemainingHours float64
	Reason         error
}

// PlacementReport carries both the committed placements and the items left
// over. Partial success is the expected common case, not an error path.
type PlacementReport struct {
	Mode     Mode
	Placed   []Placement
	Unplaced []UnplacedItem
}

// FullyPlaced reports whether every worklist item found a home.
func (r *PlacementReport) FullyPlaced() bool {
	return len(r.Unplaced) == 0
}

// Engine rewrites future plan assignments from a missed-session worklist.
// It never touches a locked day and never places work on a past day.
type Engine struct {
	// DailyBudget is the configured study-hour budget per day.
	DailyBudget float64
	// DayStart and DayEnd bound slot search within a day.
	DayStart string
	DayEnd   string
	// HorizonDays limits how far into the future candidate days are tried.
	HorizonDays int
	// Commitments are fixed external obligations consulted by enhanced-mode
	// conflict detection.
	Commitments CommitmentSet
	// LockCheck is consulted immediately before each individual placement,
	// so a day locked after the worklist was built is still refused. Nil
	// falls back to reading the plan's lock flag directly.
	LockCheck func(*StudyPlan) error
}

const defaultHorizonDays = 30

func (e *Engine) horizon() int {
	if e.HorizonDays > 0 {
		return e.HorizonDays
	}
	return defaultHorizonDays
}

func (e *Engine) dayWindow() (int, int) {
	start, err := ParseClock(e.DayStart)
	if err != nil {
		start = 9 * 60
	}
	end, err := ParseClock(e.DayEnd)
	if err != nil || end <= start {
		end = 21 * 60
	}
	return start, end
}

func (e *Engine) locked(p *StudyPlan) bool {
	if e.LockCheck != nil {
		return e.LockCheck(p) != nil
	}
	return p != nil && p.IsLocked
}

// Redistribute consumes the worklist and appends replacement sessions to
// future days in the set. Originals are marked skipped once placed, fully or
// as their final split, preserving the history of what happened to them.
// Items with no reachable capacity are reported, never silently dropped.
func (e *Engine) Redistribute(set *PlanSet, worklist []MissedItem, mode Mode, now time.Time) *PlacementReport {
	report := &PlacementReport{Mode: mode}
	items := worklist
	if mode == ModeEnhanced {
		items = e.prioritize(set, worklist)
	}

	for _, item := range items {
		source := set.ByDate(item.PlanDate)
		if source != nil && e.locked(source) {
			// The original cannot be marked skipped on a locked day, so the
			// whole item is refused rather than duplicating its hours.
			report.Unplaced = append(report.Unplaced, UnplacedItem{
				Item:           item,
				RemainingHours: item.Session.AllocatedHours,
				Reason:         &LockedDayError{Date: item.PlanDate},
			})
			continue
		}

		var placed []Placement
		var remaining float64
		switch mode {
		case ModeEnhanced:
			placed, remaining = e.placeEnhanced(set, item, now)
		default:
			placed, remaining = e.placeLegacy(set, item, now)
		}

		if len(placed) == 0 {
			report.Unplaced = append(report.Unplaced, UnplacedItem{
				Item:           item,
				RemainingHours: remaining,
				Reason: &NoCapacityError{
					TaskID:         item.Task.ID,
					SourceDate:     item.PlanDate,
					RemainingHours: remaining,
				},
			})
			continue
		}

		report.Placed = append(report.Placed, placed...)
		e.skipOriginal(set, item)
		if remaining > 0 {
			// Partially carried forward: the original is already skipped, so
			// the shortfall re-surfaces through the unscheduled-hours
			// accountant. Report it for the caller to surface as well.
			report.Unplaced = append(report.Unplaced, UnplacedItem{
				Item:           item,
				RemainingHours: remaining,
				Reason: &NoCapacityError{
					TaskID:         item.Task.ID,
					SourceDate:     item.PlanDate,
					RemainingHours: remaining,
				},
			})
		}
	}
	return report
}

// prioritize orders the worklist by importance (important first), originally
// missed date (oldest first), then remaining unscheduled hours for the task
// (larger first). The sort is stable so ties keep collector order.
func (e *Engine) prioritize(set *PlanSet, worklist []MissedItem) []MissedItem {
	plans := set.Plans()
	remaining := make(map[string]float64, len(worklist))
	for _, item := range worklist {
		if _, ok := remaining[item.Task.ID]; !ok {
			remaining[item.Task.ID] = UnscheduledHours(item.Task, plans)
		}
	}

	ordered := append([]MissedItem(nil), worklist...)
	sort.SliceStable(ordered, func(a, b int) bool {
		ia, ib := ordered[a], ordered[b]
		if ia.Task.Important != ib.Task.Important {
			return ia.Task.Important
		}
		if ia.PlanDate != ib.PlanDate {
			return ia.PlanDate < ib.PlanDate
		}
		return remaining[ia.Task.ID] > remaining[ib.Task.ID]
	})
	return ordered
}

// placeLegacy walks future days in order and drops the session's hours into
// any remaining daily capacity, truncating to what a day has left and
// carrying the remainder forward. Sessions are packed back to back from the
// start of the day window; overlap with commitments is not considered.
func (e *Engine) placeLegacy(set *PlanSet, item MissedItem, now time.Time) ([]Placement, float64) {
	dayStart, dayEnd := e.dayWindow()
	remaining := minutesOf(item.Session.AllocatedHours)

	var placed []Placement
	for offset := 0; offset < e.horizon() && remaining > 0; offset++ {
		date := Today(now.AddDate(0, 0, offset))
		plan := set.ByDate(date)
		if e.locked(plan) {
			continue
		}
		free := e.freeMinutes(plan)
		if free <= 0 {
			continue
		}

		chunk := remaining
		if chunk > free {
			chunk = free
		}
		start := dayStart
		if plan != nil {
			start += minutesOf(plan.AllocatedHours())
		}
		// A budget larger than the day window would push the emitted clock
		// strings past dayEnd, or past midnight. Clamp the displayed window;
		// capacity accounting uses AllocatedHours, never the times.
		if start+chunk > dayEnd {
			start = dayEnd - chunk
		}
		if start < dayStart {
			start = dayStart
		}
		end := start + chunk
		if end > dayEnd {
			end = dayEnd
		}
		placed = append(placed, e.commit(set, item, date, start, end, chunk))
		remaining -= chunk
	}
	return placed, hoursOf(remaining)
}

// placeEnhanced walks future days in order looking for the earliest gap that
// has free capacity and overlaps neither existing sessions nor fixed
// commitments. When no single day holds the full duration the session splits
// across days, each split a fresh session.
func (e *Engine) placeEnhanced(set *PlanSet, item MissedItem, now time.Time) ([]Placement, float64) {
	remaining := minutesOf(item.Session.AllocatedHours)

	var placed []Placement
	for offset := 0; offset < e.horizon() && remaining > 0; offset++ {
		date := Today(now.AddDate(0, 0, offset))
		plan := set.ByDate(date)
		if e.locked(plan) {
			continue
		}
		free := e.freeMinutes(plan)
		if free <= 0 {
			continue
		}

		want := remaining
		if want > free {
			want = free
		}
		busy := append(set.OccupiedIntervals(date), e.Commitments.ForDate(date)...)
		slot, ok := e.findSlot(busy, want)
		if !ok {
			continue
		}
		chunk := slot.End - slot.Start
		if chunk > want {
			chunk = want
		}
		placed = append(placed, e.commit(set, item, date, slot.Start, slot.Start+chunk, chunk))
		remaining -= chunk
	}
	return placed, hoursOf(remaining)
}

// findSlot returns the earliest free gap in the day window. A gap at least
// `want` long wins outright; otherwise the largest available gap is taken so
// the remainder can split onto later days.
func (e *Engine) findSlot(busy []Interval, want int) (Interval, bool) {
	dayStart, dayEnd := e.dayWindow()
	sort.Slice(busy, func(a, b int) bool { return busy[a].Start < busy[b].Start })

	var best Interval
	cursor := dayStart
	for _, iv := range busy {
		if iv.Start > cursor {
			gap := Interval{Start: cursor, End: minInt(iv.Start, dayEnd)}
			if gap.End-gap.Start >= want {
				return Interval{Start: gap.Start, End: gap.Start + want}, true
			}
			if gap.End-gap.Start > best.End-best.Start {
				best = gap
			}
		}
		if iv.End > cursor {
			cursor = iv.End
		}
	}
	if cursor < dayEnd {
		gap := Interval{Start: cursor, End: dayEnd}
		if gap.End-gap.Start >= want {
			return Interval{Start: gap.Start, End: gap.Start + want}, true
		}
		if gap.End-gap.Start > best.End-best.Start {
			best = gap
		}
	}
	if best.End > best.Start {
		return best, true
	}
	return Interval{}, false
}

// commit appends a replacement session to the destination plan and returns
// its placement record. New sessions always start life as plain scheduled
// work with no manual-override flag.
func (e *Engine) commit(set *PlanSet, item MissedItem, date string, startMin, endMin, chunkMin int) Placement {
	plan := set.Ensure(date)
	number := set.NextSessionNumber(item.Task.ID)
	session := StudySession{
		TaskID:         item.Task.ID,
		SessionNumber:  number,
		AllocatedHours: hoursOf(chunkMin),
		StartTime:      FormatClock(startMin),
		EndTime:        FormatClock(endMin),
		Status:         SessionScheduled,
	}
	plan.PlannedTasks = append(plan.PlannedTasks, session)
	return Placement{
		TaskID:              item.Task.ID,
		Date:                date,
		SessionNumber:       number,
		StartTime:           session.StartTime,
		EndTime:             session.EndTime,
		Hours:               session.AllocatedHours,
		SourceDate:          item.PlanDate,
		SourceSessionNumber: item.Session.SessionNumber,
	}
}

// skipOriginal marks the missed session skipped in its source plan,
// preserving it as history instead of deleting it.
func (e *Engine) skipOriginal(set *PlanSet, item MissedItem) {
	plan := set.ByDate(item.PlanDate)
	if plan == nil {
		return
	}
	if i := plan.FindSession(item.Session.SessionNumber, item.Task.ID); i >= 0 {
		plan.PlannedTasks[i].Status = SessionSkipped
	}
}

func (e *Engine) freeMinutes(p *StudyPlan) int {
	budget := minutesOf(e.DailyBudget)
	if p == nil {
		return budget
	}
	return budget - minutesOf(p.AllocatedHours())
}

func minutesOf(hours float64) int {
	return int(hours*60 + 0.5)
}

func hoursOf(minutes int) float64 {
	return float64(minutes) / 60
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
