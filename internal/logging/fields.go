package logging

// Field names for structured log entries.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldReason     = "reason"

	// Run options.
	FieldDryRun     = "dry_run"
	FieldJobs       = "jobs"
	FieldAllowRisky = "allow_risky"
	FieldCache      = "cache"

	// Engine fields.
	FieldFixer     = "fixer"
	FieldFixers    = "fixers"
	FieldPass      = "pass"
	FieldFrom      = "from"
	FieldTo        = "to"
	FieldMaxPasses = "max_passes"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesFixed      = "files_fixed"
	FieldFilesUnstable   = "files_unstable"
	FieldFilesFailed     = "files_failed"
	FieldFilesCached     = "files_cached"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule fields.
	FieldName        = "name"
	FieldPriority    = "priority"
	FieldRisky       = "risky"
	FieldDescription = "description"
	FieldOptions     = "options"
	FieldConflicts   = "conflicts"
)
