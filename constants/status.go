package constants

// JobStatus is the canonical status for a per-document parse job.
type JobStatus string

// Stable values (these exact strings appear in logs and error rows).
const (
	JobStatusQueued  JobStatus = "QUEUED"  // queued for processing
	JobStatusRunning JobStatus = "RUNNING" // in progress
	JobStatusTextOK  JobStatus = "TEXT_OK" // stage 1 completed (text recovered)
	JobStatusParsed  JobStatus = "PARSED"  // stage 2 completed (fields extracted)
	JobStatusSkipped JobStatus = "SKIPPED" // skipped before extraction (size cap etc.)
	JobStatusFailed  JobStatus = "FAILED"  // terminal failure
)
