package contextkeys

// contextKey is an unexported type to prevent collisions with context keys defined in
// other packages.
type contextKey string

// String makes contextKey satisfy the Stringer interface to assist with debugging.
func (c contextKey) String() string {
	return "wastetrack context key " + string(c)
}

// UserIDKey is the key for the authenticated principal's ID in context.Context
const UserIDKey = contextKey("userID")

// UserEmailKey is the key for the authenticated principal's email in context.Context
const UserEmailKey = contextKey("userEmail")

// UserRoleKey is the key for the authenticated principal's role in context.Context
const UserRoleKey = contextKey("userRole")

// CityIDKey is the key for the city a request operates on in context.Context
const CityIDKey = contextKey("cityID")

// RequestIDKey is the key for the request correlation ID in context.Context
const RequestIDKey = contextKey("requestID")

// ComponentKey is the key for the emitting component name in context.Context
const ComponentKey = contextKey("component")

// OperationKey is the key for the current operation name in context.Context
const OperationKey = contextKey("operation")
