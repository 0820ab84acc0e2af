// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package persona validates the persona/task query inputs and offers
// opt-in keyword-based inference for inputs that omit them.
package persona

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pdiddy/insight-engine/pkg/types"
)

// ErrMalformedQuery reports a missing persona role or job task. It is
// surfaced before any scoring happens; an empty persona is a
// configuration error, never silently defaulted.
var ErrMalformedQuery = errors.New("malformed query")

// Validate checks that the persona role and job task are non-empty.
func Validate(p types.Persona, j types.Job) error {
	if strings.TrimSpace(p.Role) == "" {
		return fmt.Errorf("%w: persona role is required", ErrMalformedQuery)
	}
	if strings.TrimSpace(j.Task) == "" {
		return fmt.Errorf("%w: job task is required", ErrMalformedQuery)
	}
	return nil
}

// profile couples trigger keywords with the persona and job they imply.
type profile struct {
	triggers []string
	role     string
	task     string
}

// profiles are checked in order; the first trigger found in the text
// wins.
var profiles = []profile{
	{
		triggers: []string{"research", "literature"},
		role:     "Researcher",
		task:     "Prepare a literature review of the documents' contributions",
	},
	{
		triggers: []string{"student", "exam", "undergraduate"},
		role:     "Student",
		task:     "Identify and study the key concepts for exam preparation",
	},
	{
		triggers: []string{"analysis", "analyst", "financial"},
		role:     "Business Analyst",
		task:     "Extract insights and analyse trends from the documents",
	},
	{
		triggers: []string{"patient", "medical", "nursing"},
		role:     "Healthcare Professional",
		task:     "Summarise clinical information relevant to patient care",
	},
}

// Detect infers a persona and job from document text using keyword
// heuristics, falling back to a generic reader profile. Callers opt in
// explicitly; Detect is never applied to an input that states its own
// persona or task.
func Detect(fullText string) (types.Persona, types.Job) {
	lower := strings.ToLower(fullText)
	for _, pr := range profiles {
		for _, trigger := range pr.triggers {
			if strings.Contains(lower, trigger) {
				return types.Persona{Role: pr.role}, types.Job{Task: pr.task}
			}
		}
	}
	return types.Persona{Role: "Reader"},
		types.Job{Task: "Summarise the key sections of the documents"}
}

// Fill completes missing persona/job fields from detected values,
// leaving stated fields untouched.
func Fill(p types.Persona, j types.Job, fullText string) (types.Persona, types.Job) {
	if strings.TrimSpace(p.Role) != "" && strings.TrimSpace(j.Task) != "" {
		return p, j
	}
	detected, detectedJob := Detect(fullText)
	if strings.TrimSpace(p.Role) == "" {
		p = detected
	}
	if strings.TrimSpace(j.Task) == "" {
		j = detectedJob
	}
	return p, j
}
