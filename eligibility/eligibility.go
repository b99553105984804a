// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package eligibility

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/callcampaign/models"
)

// CooldownWindow is how long a district stays marked as already called.
const CooldownWindow = time.Hour

// VirtualTargets are the non-geographic district numbers offered after every
// call (national leadership lines), in display order.
var VirtualTargets = []string{"-1", "-2"}

var ErrDistrictNotFound = errors.New("district not found")

// ResolutionError reports a called district missing from the directory.
type ResolutionError struct {
	State  string
	Number string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no district %s-%s in directory", e.State, e.Number)
}

func (e *ResolutionError) Unwrap() error {
	return ErrDistrictNotFound
}

// CallHistory maps a district ID to the epoch milliseconds of the most recent
// call made to it in the current session. It is only ever read here.
type CallHistory map[string]int64

type Request struct {
	HomeDistrictNumber string
	CalledState        string
	CalledNumber       string
}

// ComputeEligibleTargets returns the districts worth calling after the one in
// req, in candidate order. A nil slice is only returned with an error.
func ComputeEligibleTargets(req Request, directory []models.District, history CallHistory, now time.Time) ([]models.EligibilityCandidate, error) {
	if _, ok := FindDistrictByStateNumber(req.CalledState, req.CalledNumber, directory); !ok {
		return nil, &ResolutionError{State: req.CalledState, Number: req.CalledNumber}
	}

	numbers := make([]string, 0, len(VirtualTargets)+1)
	numbers = append(numbers, VirtualTargets...)
	if req.HomeDistrictNumber != "" {
		numbers = append(numbers, req.HomeDistrictNumber)
	}

	expiry := now.Add(-CooldownWindow).UnixMilli()
	seen := make(map[string]bool, len(numbers))
	targets := []models.EligibilityCandidate{}

	for _, number := range numbers {
		if SameNumber(number, req.CalledNumber) {
			continue
		}

		district, ok := FindDistrictByStateNumber(req.CalledState, number, directory)
		if !ok || district.Status != models.StatusActive {
			continue
		}
		if seen[district.ID] {
			continue
		}
		seen[district.ID] = true

		calledAt, called := history[district.ID]
		targets = append(targets, models.EligibilityCandidate{
			District:      district,
			AlreadyCalled: called && calledAt > expiry,
		})
	}

	return targets, nil
}

// FindDistrictByStateNumber looks up a district by case-insensitive state and
// numerically coerced district number.
func FindDistrictByStateNumber(state, number string, directory []models.District) (models.District, bool) {
	n, ok := ParseNumber(number)
	if !ok {
		return models.District{}, false
	}

	for _, d := range directory {
		if strings.EqualFold(d.State, state) && d.Number == n {
			return d, true
		}
	}
	return models.District{}, false
}

// SameNumber compares district numbers numerically, falling back to the raw
// strings when either side is not a number.
func SameNumber(a, b string) bool {
	na, okA := ParseNumber(a)
	nb, okB := ParseNumber(b)
	if okA && okB {
		return na == nb
	}
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}

// ParseNumber reads a leading integer the way district numbers arrive from
// query strings: surrounding whitespace and trailing garbage are ignored
// ("07", " 12", "3rd" all parse).
func ParseNumber(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}

	neg := false
	switch s[0] {
	case '-':
		neg = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	n, digits := 0, 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		n = n*10 + int(s[digits]-'0')
		digits++
		if n > 1<<31 {
			return 0, false
		}
	}
	if digits == 0 {
		return 0, false
	}

	if neg {
		n = -n
	}
	return n, true
}
