package user

// Username constraints enforced before any repository call
const (
	MinUsernameLength = 3
	MaxUsernameLength = 20
)

// Pet name constraints
const (
	MinPetNameLength = 1
	MaxPetNameLength = 30
)
