// SPDX-FileCopyrightText: Copyright 2025 Carabiner Systems, Inc
// SPDX-License-Identifier: Apache-2.0

package ocsf

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ISO-8601 variants accepted in evaluation dates, in extended and basic
// format. Values without an offset are read as UTC.
var timestampLayouts = buildLayouts()

func buildLayouts() []string {
	dates := []string{"2006-01-02", "20060102"}
	clocks := []string{
		"15:04:05.999999999", "15:04", "15",
		"150405.999999999", "1504",
	}
	offsets := []string{"", "Z07:00", "-0700", "-07", "-07:00:00"}

	layouts := []string{}
	for _, date := range dates {
		for _, sep := range []string{"T", " "} {
			for _, clock := range clocks {
				for _, offset := range offsets {
					layouts = append(layouts, date+sep+clock+offset)
				}
			}
		}
		layouts = append(layouts, date)
	}
	return layouts
}

// ParseTimestamp converts an ISO-8601 date to milliseconds since the epoch,
// truncating sub-millisecond precision. Empty or unparseable dates return 0.
func ParseTimestamp(date string) int64 {
	if date == "" {
		return 0
	}
	if strings.HasSuffix(date, "Z") {
		date = strings.TrimSuffix(date, "Z") + "+00:00"
	}

	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, date)
		if err != nil {
			continue
		}
		return epochMillis(t)
	}

	logrus.Debugf("unable to parse date %q, event time set to 0", date)
	return 0
}

// epochMillis truncates towards zero, also before 1970.
func epochMillis(t time.Time) int64 {
	ms := t.UnixMilli()
	if t.Unix() < 0 && t.Nanosecond()%int(time.Millisecond) != 0 {
		ms++
	}
	return ms
}
