package subscription

import (
	"fmt"
	"time"
)

// Feature is a catalog row naming something a plan can grant
type Feature struct {
	id        uint
	code      string
	name      string
	createdAt time.Time
}

func NewFeature(code, name string, now time.Time) (*Feature, error) {
	if code == "" {
		return nil, fmt.Errorf("feature code is required")
	}
	return &Feature{code: code, name: name, createdAt: now}, nil
}

func ReconstructFeature(id uint, code, name string, createdAt time.Time) (*Feature, error) {
	if id == 0 {
		return nil, fmt.Errorf("feature ID cannot be zero")
	}
	return &Feature{id: id, code: code, name: name, createdAt: createdAt}, nil
}

func (f *Feature) ID() uint {
	return f.id
}

func (f *Feature) Code() string {
	return f.code
}

func (f *Feature) Name() string {
	return f.name
}

func (f *Feature) CreatedAt() time.Time {
	return f.createdAt
}

func (f *Feature) SetID(id uint) error {
	if f.id != 0 {
		return fmt.Errorf("feature ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("feature ID cannot be zero")
	}
	f.id = id
	return nil
}
