package crm

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/roivaz/mcp-salesforce/internal/salesforce"
)

const (
	ActivityTask  = "Task"
	ActivityEvent = "Event"

	activityTypeField = "ActivityType"
	createdDateField  = "CreatedDate"
)

// RecentActivities returns the newest tasks and events attached to recordID
// through either WhoId or WhatId. Both queries run concurrently and must both
// succeed.
func (s *Service) RecentActivities(ctx context.Context, recordID string, limit int) ([]salesforce.Record, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	var tasks, events *salesforce.QueryResult
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		tasks, err = s.backend.Query(gctx, activitySOQL("Task", taskActivityFields, recordID, limit))
		return err
	})
	g.Go(func() error {
		var err error
		events, err = s.backend.Query(gctx, activitySOQL("Event", eventActivityFields, recordID, limit))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, &OpError{Op: "get recent activities", Err: err}
	}

	return MergeActivities(tasks.Records, events.Records, limit), nil
}

// MergeActivities tags every row with its kind, orders the union by
// CreatedDate descending and keeps the first limit rows. Rows with equal
// timestamps keep their input order, tasks before events. The inputs are not
// modified.
func MergeActivities(tasks, events []salesforce.Record, limit int) []salesforce.Record {
	type entry struct {
		rec salesforce.Record
		at  time.Time
	}
	merged := make([]entry, 0, len(tasks)+len(events))
	for _, r := range tasks {
		merged = append(merged, entry{rec: tagged(r, ActivityTask), at: createdAt(r)})
	}
	for _, r := range events {
		merged = append(merged, entry{rec: tagged(r, ActivityEvent), at: createdAt(r)})
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].at.After(merged[j].at)
	})

	if limit >= 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	out := make([]salesforce.Record, len(merged))
	for i, e := range merged {
		out[i] = e.rec
	}
	return out
}

func tagged(r salesforce.Record, kind string) salesforce.Record {
	out := make(salesforce.Record, len(r)+1)
	for k, v := range r {
		out[k] = v
	}
	out[activityTypeField] = kind
	return out
}

// Salesforce renders datetimes as 2024-01-31T09:15:00.000+0000.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	time.RFC3339Nano,
	"2006-01-02",
}

// createdAt parses CreatedDate. Rows without a parseable value sort last.
func createdAt(r salesforce.Record) time.Time {
	raw, _ := r[createdDateField].(string)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}
