package i

import (
	dmn "github.com/beka-birhanu/trailgen-api/domain"
	"github.com/google/uuid"
)

// UserRepo defines the interface for user persistence operations.
type UserRepo interface {
	// Save inserts or updates a user in the repository.
	// If the user already exists, it updates the record. Otherwise, it creates a new one.
	Save(user *dmn.User) error

	// ByID retrieves a user by their unique ID.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.User, error)

	// ByUsername retrieves a user by their username.
	// Returns an error if the user is not found or in case of an unexpected error.
	ByUsername(username string) (*dmn.User, error)
}

// TrailRepo defines the interface for trail persistence operations.
type TrailRepo interface {
	// Save inserts or updates a trail in the repository, including its
	// marked cells once a run has finished.
	Save(trail *dmn.Trail) error

	// ByID retrieves a trail by its unique ID.
	ByID(id uuid.UUID) (*dmn.Trail, error)

	// ByOwner retrieves the trails owned by a user, newest request first,
	// without their cell lists.
	ByOwner(ownerID uuid.UUID) ([]*dmn.Trail, error)
}
