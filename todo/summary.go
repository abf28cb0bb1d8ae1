package todo

// Summary holds aggregate counts over the task document. Pure aggregation,
// no side effects.
type Summary struct {
	Total        int            `json:"total"`
	ByStatus     map[Status]int `json:"by_status"`
	ByCategory   map[string]int `json:"by_category"`
	ByPriority   map[string]int `json:"by_priority"`
	HighPriority int            `json:"high_priority_count"`
	InProgress   int            `json:"in_progress_count"`
	Blocked      int            `json:"blocked_count"`
	Unblocked    int            `json:"unblocked_count"`
	Dependencies int            `json:"dependencies_count"`
}

// highPriorityFloor is the minimum priority counted as high priority in the
// summary, matching the 9-10 "critical" reporting band's neighbor.
const highPriorityFloor = 8

// Summary returns counts by status, category and priority bucket, plus
// blocked/unblocked partition sizes.
func (s *Store) Summary() (*Summary, error) {
	doc, err := s.Load()
	if err != nil {
		return nil, err
	}
	return summarize(doc), nil
}

func summarize(doc *Document) *Summary {
	summary := &Summary{
		Total:        len(doc.Todos),
		ByStatus:     make(map[Status]int, len(doc.Statuses)),
		ByCategory:   make(map[string]int, len(doc.Categories)),
		ByPriority:   make(map[string]int, 4),
		Dependencies: doc.Graph().Len(),
	}
	for _, status := range doc.Statuses {
		summary.ByStatus[status] = 0
	}
	for _, category := range doc.Categories {
		summary.ByCategory[category] = 0
	}
	for _, bucket := range PriorityBuckets() {
		summary.ByPriority[bucket] = 0
	}

	for _, t := range doc.Todos {
		summary.ByStatus[t.Status]++
		summary.ByCategory[t.Category]++
		summary.ByPriority[PriorityBucket(t.Priority)]++
		if t.Status == StatusInProgress {
			summary.InProgress++
		}
		if t.Priority >= highPriorityFloor && t.Status == StatusTodo {
			summary.HighPriority++
		}
	}

	blocked, unblocked := partitionBlocked(doc)
	summary.Blocked = len(blocked)
	summary.Unblocked = len(unblocked)
	return summary
}
