package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"

	// Reordering fields.
	FieldSection  = "section"
	FieldKey      = "key"
	FieldChanged  = "changed"
	FieldStatus   = "status"
	FieldBackup   = "backup"
	FieldCheck    = "check"
	FieldDryRun   = "dry_run"
	FieldJobs     = "jobs"
	FieldStrict   = "strict"
	FieldVerify   = "verify"
	FieldWarnings = "warnings"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesErrored    = "files_errored"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
