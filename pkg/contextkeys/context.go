package contextkeys

type ContextKey string

const (
	// DBContextKey is the key under which the request-scoped *gorm.DB
	// (connection pool or test transaction) is stored.
	DBContextKey ContextKey = "db"
)
