// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package gedcom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/stamtavla/internal/gedcom"
)

/*
TestParsePartialDate covers the supported subset and the year fallback.
*/
func TestParsePartialDate(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"full_date", "02 JAN 1900", "1900-01-02"},
		{"single_digit_day", "2 JAN 1900", "1900-01-02"},
		{"lower_case_month", "12 jun 1905", "1905-06-12"},
		{"month_year", "MAR 1850", "1850-03"},
		{"year_only", "1850", "1850"},
		{"surrounding_space", "  1 DEC 1799 ", "1799-12-01"},
		{"qualified_year", "ABT 1850", "1850"},
		{"range", "BET 1850 AND 1860", "1850"},
		{"unknown_month", "12 FOO 1900", "1900"},
		{"day_out_of_range", "45 JAN 1900", "1900"},
		{"empty", "", ""},
		{"garbage", "unknown", ""},
		{"five_digits", "18500", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gedcom.ParsePartialDate(tt.text))
		})
	}
}

/*
TestFormatPartialDate covers each precision and the fallbacks for malformed input.
*/
func TestFormatPartialDate(t *testing.T) {
	tests := []struct {
		name string
		iso  string
		want string
	}{
		{"full_date", "1900-01-02", "02 JAN 1900"},
		{"month_year", "1905-06", "JUN 1905"},
		{"year_only", "1850", "1850"},
		{"empty", "", ""},
		{"bad_month", "1900-13-01", "1900"},
		{"bad_day", "1900-02-00", "FEB 1900"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, gedcom.FormatPartialDate(tt.iso))
		})
	}
}

/*
TestDate_RoundTrip keeps precision for every supported granularity.
*/
func TestDate_RoundTrip(t *testing.T) {
	for _, iso := range []string{"1900", "1900-11", "1900-11-30", "2001-02-03"} {
		assert.Equal(t, iso, gedcom.ParsePartialDate(gedcom.FormatPartialDate(iso)), iso)
	}
}

/*
TestSplitPlace checks the first-comma rule.
*/
func TestSplitPlace(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		city   string
		region string
	}{
		{"city_and_region", "Stockholm, Uppland", "Stockholm", "Uppland"},
		{"single_token", "Stockholm", "Stockholm", ""},
		{"extra_commas_stay_in_region", "Gamla stan, Stockholm, Sverige", "Gamla stan", "Stockholm, Sverige"},
		{"untrimmed", "  Uppsala ,  Uppland ", "Uppsala", "Uppland"},
		{"region_only", ", Uppland", "", "Uppland"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			city, region := gedcom.SplitPlace(tt.text)
			assert.Equal(t, tt.city, city)
			assert.Equal(t, tt.region, region)
		})
	}
}

/*
TestJoinPlace omits absent parts.
*/
func TestJoinPlace(t *testing.T) {
	assert.Equal(t, "Stockholm, Uppland", gedcom.JoinPlace("Stockholm", "Uppland"))
	assert.Equal(t, "Stockholm", gedcom.JoinPlace("Stockholm", ""))
	assert.Equal(t, "Uppland", gedcom.JoinPlace("", "Uppland"))
	assert.Equal(t, "", gedcom.JoinPlace("", ""))
}
