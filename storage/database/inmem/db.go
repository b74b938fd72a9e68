// Package inmemdb provides map-backed repositories for tests.
package inmemdb

import (
	"sync"

	"github.com/trezcool/darasa/core/chat"
	"github.com/trezcool/darasa/core/submission"
	"github.com/trezcool/darasa/core/user"
)

type (
	userTable struct {
		mutex sync.RWMutex
		table map[string]*user.User // keyed by ID
	}

	submissionTable struct {
		mutex sync.RWMutex
		table map[submissionKey]*submission.Submission
	}

	submissionKey struct {
		userID   string
		question string
	}

	transcriptTable struct {
		mutex sync.RWMutex
		table map[string]*chat.Transcript // keyed by user ID
	}

	DB struct {
		user       *userTable
		submission *submissionTable
		transcript *transcriptTable
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:       &userTable{table: make(map[string]*user.User)},
		submission: &submissionTable{table: make(map[submissionKey]*submission.Submission)},
		transcript: &transcriptTable{table: make(map[string]*chat.Transcript)},
	}
	return db, nil
}
