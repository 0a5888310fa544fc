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


// Package storage defines the vector cache abstraction and its binary
// serialization.
//
// The ranking core works entirely in memory; the only thing worth
// persisting between runs is the document embedding vectors, which are
// expensive to recompute against an external encoder. The cache is
// bound to a single catalogue fingerprint and purged wholesale when the
// catalogue or the embedding model changes.
package storage
