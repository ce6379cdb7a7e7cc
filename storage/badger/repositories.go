// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"errors"
	"log/slog"
)

// Repositories bundles the three BadgerDB repositories sharing one backend.
type Repositories struct {
	Backend      *Backend
	Tenders      *TenderRepository
	Profiles     *ProfileRepository
	Interactions *InteractionRepository
}

// OpenRepositories opens a backend at filePath and creates all repositories on it.
// Caller must Close the result when done.
func OpenRepositories(filePath string, inMemory bool, opts ...BackendOption) (*Repositories, error) {
	backend, err := OpenBackend(filePath, inMemory, opts...)
	if err != nil {
		return nil, err
	}

	tenders, err := NewTenderRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	profiles, err := NewProfileRepository(backend)
	if err != nil {
		tenders.Close()
		backend.Close()
		return nil, err
	}

	interactions, err := NewInteractionRepository(backend)
	if err != nil {
		profiles.Close()
		tenders.Close()
		backend.Close()
		return nil, err
	}

	return &Repositories{
		Backend:      backend,
		Tenders:      tenders,
		Profiles:     profiles,
		Interactions: interactions,
	}, nil
}

// NewMemoryRepositories creates in-memory repositories with logging discarded.
func NewMemoryRepositories(opts ...BackendOption) (*Repositories, error) {
	opts = append([]BackendOption{WithLogger(slog.New(slog.DiscardHandler))}, opts...)
	return OpenRepositories("", true, opts...)
}

// Close closes the repositories and then the backend.
func (r *Repositories) Close() error {
	return errors.Join(
		r.Interactions.Close(),
		r.Profiles.Close(),
		r.Tenders.Close(),
		r.Backend.Close(),
	)
}
