package service

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// serial day 25569 is 1970-01-01 in the 1900 date system. The epoch offset
// keeps the classic Lotus leap-year off-by-one, matching what the billing
// exports produce.
const excelUnixEpochDay = 25569

func excelSerialToTime(serial float64) time.Time {
	utcDays := math.Floor(serial - excelUnixEpochDay)
	datePart := time.Unix(int64(utcDays)*86400, 0).UTC()

	fractionalDay := serial - math.Floor(serial) + 0.0000001
	totalSeconds := int(math.Floor(86400 * fractionalDay))
	seconds := totalSeconds % 60
	totalSeconds -= seconds
	hours := totalSeconds / 3600
	minutes := (totalSeconds / 60) % 60

	return time.Date(
		datePart.Year(), datePart.Month(), datePart.Day(),
		hours, minutes, seconds, 0, time.UTC,
	)
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
}

// normalizeDate accepts an Excel serial day number or a free-form date
// string, attempted in that order; first success wins.
func normalizeDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil && !math.IsNaN(serial) && !math.IsInf(serial, 0) {
		return excelSerialToTime(serial), true
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed.UTC(), true
		}
	}

	return time.Time{}, false
}
