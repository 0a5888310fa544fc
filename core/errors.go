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


package core

import "errors"

// Domain errors
var (
	// ErrInvalidStrategy indicates an unrecognized ranking strategy selector.
	// Surfaced to the caller, never retried.
	ErrInvalidStrategy = errors.New("invalid ranking strategy")

	// ErrEmptyQuery indicates a query that tokenizes to nothing.
	ErrEmptyQuery = errors.New("query contains no tokens")

	// ErrEncoderUnavailable indicates the external embedding encoder is
	// unreachable, mis-configured, or timed out. The caller may retry with
	// a lexical strategy; the core never falls back on its own.
	ErrEncoderUnavailable = errors.New("embedding encoder unavailable")

	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyText indicates the Text field is empty.
	ErrEmptyText = errors.New("document text cannot be empty")
)
