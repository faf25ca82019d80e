package globals

// Context keys
type ContextKey string

const UserIDKey ContextKey = "userId"
const SessionKey ContextKey = "session"
const CartSessionKey ContextKey = "cartSession"
