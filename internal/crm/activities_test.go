package crm

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/roivaz/mcp-salesforce/internal/salesforce"
)

func TestMergeActivities(t *testing.T) {
	tasks := []salesforce.Record{
		{"Id": "T1", "CreatedDate": "2024-01-05T10:00:00.000+0000"},
		{"Id": "T2", "CreatedDate": "2024-01-03T10:00:00.000+0000"},
		{"Id": "T3", "CreatedDate": "2024-01-01T10:00:00.000+0000"},
	}
	events := []salesforce.Record{
		{"Id": "E1", "CreatedDate": "2024-01-06T10:00:00.000+0000"},
		{"Id": "E2", "CreatedDate": "2024-01-04T10:00:00.000+0000"},
		{"Id": "E3", "CreatedDate": "2024-01-02T10:00:00.000+0000"},
		{"Id": "E4", "CreatedDate": "2023-12-31T10:00:00.000+0000"},
	}

	got := MergeActivities(tasks, events, 5)
	wantIDs := []string{"E1", "T1", "E2", "T2", "E3"}
	if len(got) != len(wantIDs) {
		t.Fatalf("expected %d activities, got %d", len(wantIDs), len(got))
	}
	for i, id := range wantIDs {
		if got[i]["Id"] != id {
			t.Fatalf("position %d: expected %s, got %v", i, id, got[i]["Id"])
		}
	}
	if got[0]["ActivityType"] != ActivityEvent || got[1]["ActivityType"] != ActivityTask {
		t.Fatalf("activities not tagged: %v", got[:2])
	}
	if _, ok := tasks[0]["ActivityType"]; ok {
		t.Fatalf("input records must not be modified")
	}
}

func TestMergeActivitiesTiesAndUnparseable(t *testing.T) {
	tasks := []salesforce.Record{
		{"Id": "T1", "CreatedDate": "2024-01-01T10:00:00.000+0000"},
		{"Id": "T2"},
	}
	events := []salesforce.Record{
		{"Id": "E1", "CreatedDate": "2024-01-01T10:00:00.000+0000"},
		{"Id": "E2", "CreatedDate": "not a date"},
	}
	got := MergeActivities(tasks, events, 10)
	wantIDs := []string{"T1", "E1", "T2", "E2"}
	for i, id := range wantIDs {
		if got[i]["Id"] != id {
			t.Fatalf("position %d: expected %s, got %v", i, id, got[i]["Id"])
		}
	}
}

func TestMergeActivitiesMixedOffsets(t *testing.T) {
	tasks := []salesforce.Record{{"Id": "T1", "CreatedDate": "2024-01-01T10:00:00.000+0000"}}
	events := []salesforce.Record{{"Id": "E1", "CreatedDate": "2024-01-01T11:30:00.000+0200"}}
	got := MergeActivities(tasks, events, 10)
	if got[0]["Id"] != "T1" {
		t.Fatalf("expected instant comparison across offsets, got %v first", got[0]["Id"])
	}
}

func TestRecentActivities(t *testing.T) {
	backend := &fakeBackend{queryFn: func(soql string) (*salesforce.QueryResult, error) {
		if strings.Contains(soql, "FROM Task") {
			return &salesforce.QueryResult{TotalSize: 1, Records: []salesforce.Record{{"Id": "T1", "CreatedDate": "2024-01-02T00:00:00.000+0000"}}}, nil
		}
		return &salesforce.QueryResult{TotalSize: 1, Records: []salesforce.Record{{"Id": "E1", "CreatedDate": "2024-01-03T00:00:00.000+0000"}}}, nil
	}}

	got, err := NewService(backend).RecentActivities(context.Background(), "001A", 5)
	if err != nil {
		t.Fatalf("activities: %v", err)
	}
	if len(got) != 2 || got[0]["Id"] != "E1" || got[1]["Id"] != "T1" {
		t.Fatalf("unexpected activities %v", got)
	}
	if len(backend.queries) != 2 {
		t.Fatalf("expected two queries, got %d", len(backend.queries))
	}
	for _, q := range backend.queries {
		if !strings.Contains(q, "WHERE WhatId = '001A' OR WhoId = '001A' ORDER BY CreatedDate DESC LIMIT 5") {
			t.Fatalf("unexpected activity query %s", q)
		}
	}
}

func TestRecentActivitiesFailsWhole(t *testing.T) {
	backend := &fakeBackend{queryFn: func(soql string) (*salesforce.QueryResult, error) {
		if strings.Contains(soql, "FROM Event") {
			return nil, errors.New("INVALID_TYPE: Event")
		}
		return &salesforce.QueryResult{Records: []salesforce.Record{{"Id": "T1"}}}, nil
	}}
	got, err := NewService(backend).RecentActivities(context.Background(), "001A", 5)
	if err == nil || err.Error() != "Failed to get recent activities: INVALID_TYPE: Event" {
		t.Fatalf("unexpected error %v", err)
	}
	if got != nil {
		t.Fatalf("expected no partial result, got %v", got)
	}
}
