package domain

// DaySchedule is one day's slice of the weekly schedule. Days with no
// buckets are still present with an empty bucket list.
type DaySchedule struct {
	Day     Weekday
	Buckets []Bucket
}

// GroupByDay partitions the full bucket set into the seven weekdays in
// schedule order. The result is recomputed from scratch on every call; the
// grouping views are derivations, never a cache.
func GroupByDay(buckets []Bucket) []DaySchedule {
	byDay := make(map[Weekday][]Bucket, len(Weekdays()))
	for _, b := range buckets {
		byDay[b.DayOfWeek] = append(byDay[b.DayOfWeek], b)
	}
	out := make([]DaySchedule, 0, len(Weekdays()))
	for _, day := range Weekdays() {
		group := byDay[day]
		if group == nil {
			group = []Bucket{}
		}
		out = append(out, DaySchedule{Day: day, Buckets: group})
	}
	return out
}

// TopicSummary aggregates the buckets of one topic.
type TopicSummary struct {
	Topic              Topic
	BucketCount        int
	ActiveBucketCount  int
	ScheduledQuestions int
	ScheduledDays      []Weekday
	BankQuestionCount  int // questions of this topic in the bank, scheduled or not
}

// SummarizeTopics aggregates the same underlying bucket set by topic. Every
// taxonomy topic appears, so topics with zero buckets render an explicit
// empty state. ScheduledDays are distinct and in week order.
func SummarizeTopics(buckets []Bucket, questions []Question) []TopicSummary {
	bankCounts := make(map[Topic]int)
	for _, q := range questions {
		bankCounts[q.Topic]++
	}

	out := make([]TopicSummary, 0, len(Topics()))
	for _, topic := range Topics() {
		summary := TopicSummary{Topic: topic, BankQuestionCount: bankCounts[topic]}
		days := make(map[Weekday]bool)
		for _, b := range buckets {
			if b.Topic != topic {
				continue
			}
			summary.BucketCount++
			if b.IsActive {
				summary.ActiveBucketCount++
			}
			summary.ScheduledQuestions += b.LocalQuestionCount()
			days[b.DayOfWeek] = true
		}
		for _, day := range Weekdays() {
			if days[day] {
				summary.ScheduledDays = append(summary.ScheduledDays, day)
			}
		}
		out = append(out, summary)
	}
	return out
}
