package main

import "testing"

func TestFlagName(t *testing.T) {
	cases := map[string]string{
		"title":      "title",
		"assignedTo": "assigned-to",
		"startDate":  "start-date",
	}
	for in, want := range cases {
		if got := flagName(in); got != want {
			t.Fatalf("flagName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFieldName(t *testing.T) {
	cases := map[string]string{
		"assigned_to": "assignedTo",
		"start-date":  "startDate",
		"endDate":     "endDate",
		" sprint ":    "sprint",
	}
	for in, want := range cases {
		if got := fieldName(in); got != want {
			t.Fatalf("fieldName(%q) = %q, want %q", in, got, want)
		}
	}
}
