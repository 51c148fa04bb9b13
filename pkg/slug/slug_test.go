// Copyright (c) 2026 Stamtavla. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/stamtavla/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := map[string]string{
		"Släkten Ådahl":       "slakten-adahl",
		"Søren Ærø":           "soren-aero",
		"  Stamtavla 1880 ":   "stamtavla-1880",
		"Jönsson & Öberg!!":   "jonsson-oberg",
		"---":                 "",
		"Nguyễn Văn Tài":      "nguyen-van-tai",
		"already-a-slug-2026": "already-a-slug-2026",
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, slug.From(input))
		})
	}
}
