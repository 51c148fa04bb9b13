// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gedcom

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// months holds the GEDCOM month codes, index 0 = January.
var months = [12]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

var (
	yearRegex      = regexp.MustCompile(`^\d{4}$`)
	dayRegex       = regexp.MustCompile(`^\d{1,2}$`)
	looseYearRegex = regexp.MustCompile(`(?:^|\D)(\d{4})(?:\D|$)`)
)

// # Dates

/*
ParsePartialDate converts GEDCOM date text into a partial ISO date.

Accepted forms:

  - "DD MON YYYY" → "YYYY-MM-DD" (one or two digit day)
  - "MON YYYY"    → "YYYY-MM"
  - "YYYY"        → "YYYY"

Month codes are matched case-insensitively. Anything outside this subset
(ranges, qualifiers, other calendars) degrades to the first standalone
four-digit year in the text, or "" when there is none.
*/
func ParsePartialDate(text string) string {
	fields := strings.Fields(strings.ToUpper(text))

	switch len(fields) {
	case 1:
		if yearRegex.MatchString(fields[0]) {
			return fields[0]
		}
	case 2:
		if month := monthNumber(fields[0]); month > 0 && yearRegex.MatchString(fields[1]) {
			return fmt.Sprintf("%s-%02d", fields[1], month)
		}
	case 3:
		if dayRegex.MatchString(fields[0]) && yearRegex.MatchString(fields[2]) {
			day, _ := strconv.Atoi(fields[0])
			if month := monthNumber(fields[1]); month > 0 && day >= 1 && day <= 31 {
				return fmt.Sprintf("%s-%02d-%02d", fields[2], month, day)
			}
		}
	}

	if match := looseYearRegex.FindStringSubmatch(text); match != nil {
		return match[1]
	}
	return ""
}

/*
FormatPartialDate converts a partial ISO date into GEDCOM date text.

"YYYY-MM-DD" → "DD MON YYYY", "YYYY-MM" → "MON YYYY", "YYYY" → "YYYY".
An empty input yields "". A month outside 01-12 is dropped and only the
year is kept.
*/
func FormatPartialDate(iso string) string {
	iso = strings.TrimSpace(iso)
	if iso == "" {
		return ""
	}

	parts := strings.SplitN(iso, "-", 3)
	year := parts[0]
	if len(parts) == 1 {
		return year
	}

	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return year
	}
	code := months[month-1]
	if len(parts) == 2 {
		return code + " " + year
	}

	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return code + " " + year
	}
	return fmt.Sprintf("%02d %s %s", day, code, year)
}

// monthNumber returns 1-12 for a GEDCOM month code, or 0.
func monthNumber(code string) int {
	for index, candidate := range months {
		if candidate == code {
			return index + 1
		}
	}
	return 0
}

// # Places

// SplitPlace splits "city, region" on the first comma. A place without a
// comma is treated entirely as the city.
func SplitPlace(text string) (city, region string) {
	city, region, _ = strings.Cut(text, ",")
	return strings.TrimSpace(city), strings.TrimSpace(region)
}

// JoinPlace joins the present parts with ", ". It returns "" when both are
// empty, in which case callers omit the PLAC line.
func JoinPlace(city, region string) string {
	city, region = strings.TrimSpace(city), strings.TrimSpace(region)
	switch {
	case city == "":
		return region
	case region == "":
		return city
	}
	return city + ", " + region
}
