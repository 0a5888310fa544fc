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


// Package rank implements the three document-ranking strategies over an
// immutable catalogue store:
//
//   - Exact keyword match: raw query-token occurrence counts
//   - BM25: Okapi term saturation with corpus inverse document frequency
//   - Embedding: cosine similarity against an injected encoder
//
// All three share the tokenizer and, for the lexical pair, a corpus
// statistics snapshot computed once per store. Every scoring path is a
// pure read over the store, so independent queries may run in parallel;
// the only blocking operation is the embedding scorer's encoder call.
package rank
