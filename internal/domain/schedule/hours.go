package schedule

// UnscheduledHours computes how much of a task's estimated effort is not
// assigned to any live session across all plans. Skipped sessions do not
// count as scheduled. Never negative: over-allocation clamps to zero.
func UnscheduledHours(task Task, plans []StudyPlan) float64 {
	var scheduled float64
	for i := range plans {
		for j := range plans[i].PlannedTasks {
			s := &plans[i].PlannedTasks[j]
			if s.TaskID != task.ID || s.Status == SessionSkipped {
				continue
			}
			scheduled += s.AllocatedHours
		}
	}
	if scheduled >= task.EstimatedHours {
		return 0
	}
	return task.EstimatedHours - scheduled
}

// TotalUnscheduledHours sums UnscheduledHours over pending tasks only.
// Completed and cancelled tasks contribute nothing even when
// under-scheduled. Recomputed on demand, never cached.
func TotalUnscheduledHours(tasks []Task, plans []StudyPlan) float64 {
	var total float64
	for _, t := range tasks {
		if t.Status != TaskPending {
			continue
		}
		total += UnscheduledHours(t, plans)
	}
	return total
}
