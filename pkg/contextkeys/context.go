package contextkeys

type contextKey string

// DBContextKey - *gorm.DB запроса, кладёт middleware.DBMiddleware
const DBContextKey = contextKey("db")
