package schedule

import (
	"sort"
	"time"
)

// MissedItem is one entry of the redistribution worklist: a missed session,
// the day it was planned on and its owning task.
type MissedItem struct {
	Session  StudySession
	PlanDate string
	Task     Task
}

// CollectMissed scans every past plan for sessions that classify as missed
// and whose owning task is still pending. A session referencing a deleted
// task is silently skipped. The worklist is ordered by plan date ascending,
// then original session order, so redistribution is deterministic for a
// given plan-set snapshot. The scan never mutates a plan.
func CollectMissed(tasks []Task, plans []StudyPlan, now time.Time) []MissedItem {
	idx := TaskIndex(tasks)
	today := Today(now)

	past := make([]*StudyPlan, 0, len(plans))
	for i := range plans {
		if plans[i].Date < today {
			past = append(past, &plans[i])
		}
	}
	sort.SliceStable(past, func(a, b int) bool {
		return past[a].Date < past[b].Date
	})

	var worklist []MissedItem
	for _, p := range past {
		for _, s := range p.PlannedTasks {
			if Classify(s, p.Date, now) != StatusMissed {
				continue
			}
			task, ok := idx[s.TaskID]
			if !ok || task.Status != TaskPending {
				continue
			}
			worklist = append(worklist, MissedItem{Session: s, PlanDate: p.Date, Task: task})
		}
	}
	return worklist
}
