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


// Package rankit ranks small in-memory document catalogues with three
// interchangeable strategies: exact keyword counting, BM25, and
// embedding cosine similarity.
//
// The Engine is the top-level handle: it loads an activity catalogue
// from CSV, snapshots the corpus term statistics, and optionally wires
// an OpenAI-compatible embedding encoder plus a persistent BadgerDB
// vector cache. Individual pieces (catalog, rank, ai, storage) are
// usable on their own.
package rankit
