package postgres

// PostgreSQL error codes checked when mapping driver errors to domain errors
const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
)

// Constraint names referenced when a unique violation must be attributed
// to a specific column
const (
	constraintUsersUsernameKey = "users_username_key"
)
