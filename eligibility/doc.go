// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package eligibility decides which districts a caller is asked to call next.

# Candidates

Candidates are the two campaign-wide virtual districts, numbered -1 and -2,
followed by the caller's home district number:

	targets, err := eligibility.ComputeEligibleTargets(req, directory, history, time.Now())

The district just called is never suggested again. Numbers compare
numerically, so "05" and "5" are the same district. A candidate is kept
when a directory entry in the called state has that number and status
"active". Order follows the candidate list, and each district id appears
at most once.

# Cooldown

A district called less than CooldownWindow (one hour) ago is still
returned, with AlreadyCalled set. A call exactly one hour old no longer
counts.

An empty result is an empty slice. When the called district is missing from
the directory, ComputeEligibleTargets returns a *ResolutionError wrapping
ErrDistrictNotFound.
*/
package eligibility
