package exitcode

const (
	Success        = 0
	UsageError     = 1
	SchemaError    = 2
	LookupError    = 3
	IntegrityError = 4
	OutputError    = 5
	DBConnError    = 6
)
