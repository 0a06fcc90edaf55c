// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 CareHaven Contributors

package care

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carehaven/carehaven/pkg/errutil"
)

func TestDate_JSON(t *testing.T) {
	var d Date
	require.NoError(t, json.Unmarshal([]byte(`"1941-03-07"`), &d))
	assert.Equal(t, NewDate(1941, time.March, 7), d)

	require.NoError(t, json.Unmarshal([]byte(`"1941-03-07T22:15:00-05:00"`), &d))
	assert.Equal(t, NewDate(1941, time.March, 8), d, "timestamps keep their UTC date")

	out, err := json.Marshal(NewDate(2020, time.January, 2))
	require.NoError(t, err)
	assert.JSONEq(t, `"2020-01-02"`, string(out))

	out, err = json.Marshal(Date{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.True(t, d.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`"07/03/1941"`), &d))
}

func TestValidateAvailability(t *testing.T) {
	tests := []struct {
		name  string
		slots []Availability
		ok    bool
	}{
		{"empty", nil, true},
		{"valid", []Availability{{Day: "Monday", StartTime: "09:00", EndTime: "17:00"}}, true},
		{"bad day", []Availability{{Day: "Funday", StartTime: "09:00", EndTime: "17:00"}}, false},
		{"bad time", []Availability{{Day: "monday", StartTime: "9am", EndTime: "17:00"}}, false},
		{"end before start", []Availability{{Day: "monday", StartTime: "17:00", EndTime: "09:00"}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateAvailability("availability", tt.slots)
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			errutil.AssertValidationField(t, err, "availability")
		})
	}
}

func TestValidateCurrency(t *testing.T) {
	assert.NoError(t, validateCurrency("USD"))
	assert.Error(t, validateCurrency("usd"))
	assert.Error(t, validateCurrency("US"))
	assert.Error(t, validateCurrency("U5D"))
	assert.Equal(t, "USD", defaultCurrency(""))
	assert.Equal(t, "EUR", defaultCurrency("eur"))
}
