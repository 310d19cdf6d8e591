package myuuid

import "github.com/google/uuid"

//go:generate mockgen -source=uuid.go -package myuuid -destination uuid_mock.go UUIDer
type UUIDer interface {
	Create() string
}

type RealUUIDer struct{}

func (u RealUUIDer) Create() string {
	return uuid.New().String()
}

// IsValid reports whether s is a canonical uuid as produced by Create.
func IsValid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}
