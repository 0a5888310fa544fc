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


// Package catalog loads tabular activity datasets into an immutable
// in-memory document store.
//
// A Store is built once per dataset and never mutated, which is what lets
// the ranking core treat corpus statistics as a one-time snapshot. The
// store fingerprint gives caches a cheap way to notice a reload.
package catalog
