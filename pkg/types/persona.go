// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Persona is the stated role and description of the end user whose
// information need drives scoring.
type Persona struct {
	// Role is the persona role (e.g. "PhD Researcher in Computational
	// Biology"). Required.
	Role string `json:"role" yaml:"role"`

	// Description optionally elaborates the role.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Job is the job-to-be-done: the task the persona is trying to
// accomplish with the document set.
type Job struct {
	// Task describes the job (e.g. "Prepare a literature review").
	// Required.
	Task string `json:"task" yaml:"task"`
}

// InputDocument names one document in a run input spec.
type InputDocument struct {
	Filename string `json:"filename" yaml:"filename"`
	Title    string `json:"title,omitempty" yaml:"title,omitempty"`
}

// RunInput is the on-disk run specification: the documents to analyze
// and the persona/job descriptors. Readable from JSON or YAML.
type RunInput struct {
	Documents []InputDocument `json:"documents" yaml:"documents"`
	Persona   Persona         `json:"persona" yaml:"persona"`
	Job       Job             `json:"job_to_be_done" yaml:"job_to_be_done"`
}
