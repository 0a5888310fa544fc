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


// Package ai defines the embedding capability the ranking core depends on.
//
// The core only ever talks to the Embedder interface, never to a concrete
// client, so the embedding scorer stays testable with the deterministic
// stub in ai/mock and swappable between providers. The ai/openai
// subpackage implements the interface against any OpenAI-compatible
// embedding endpoint.
package ai
