// Package storage persists the task collection as a single durable unit.
// There is no partial-write or transaction concept at the store level: every
// Save overwrites the whole collection, and Load returns the last committed
// state after a restart.
package storage

import "github.com/harrisonrobin/goalplan/pkg/model"

type Store interface {
	Load() ([]model.Task, error)
	Save(tasks []model.Task) error
}
