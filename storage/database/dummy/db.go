package dummydb

import (
	"sync"

	"github.com/frankspastic/psia-gradebook/core/gradebook"
)

type (
	DB struct {
		gradebook *gradebookTables
	}

	gradebookTables struct {
		sync.RWMutex
		pk          int
		classes     map[int]*gradebook.Class
		students    map[int]*gradebook.Student
		contacts    map[int]*gradebook.EmailContact
		assignments map[int]*gradebook.Assignment
		grades      map[int]*gradebook.Grade
		settings    map[string]*gradebook.Setting
	}
)

func Open() (*DB, error) {
	db := &DB{
		gradebook: &gradebookTables{
			classes:     make(map[int]*gradebook.Class),
			students:    make(map[int]*gradebook.Student),
			contacts:    make(map[int]*gradebook.EmailContact),
			assignments: make(map[int]*gradebook.Assignment),
			grades:      make(map[int]*gradebook.Grade),
			settings:    make(map[string]*gradebook.Setting),
		},
	}
	return db, nil
}

// nextPK must be called with the write lock held.
func (t *gradebookTables) nextPK() int {
	t.pk++
	return t.pk
}
