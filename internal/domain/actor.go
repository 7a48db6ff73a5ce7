package domain

// ActorRole роль инициатора действия
type ActorRole string

const (
	RoleCustomer ActorRole = "customer"
	RoleOperator ActorRole = "operator"
)

// Actor identifies who performed a state transition, for audit. Passed
// explicitly into every transition call rather than read from ambient
// session state.
type Actor struct {
	ID   int64
	Role ActorRole
}

// IsOperator returns true if the actor has operator privileges
func (a Actor) IsOperator() bool {
	return a.Role == RoleOperator
}
