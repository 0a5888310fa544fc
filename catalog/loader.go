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


package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/poiesic/rankit/core"
)

// Known column names. The loader requires a text column; everything else
// is optional. Unrecognized columns are kept verbatim in Metadata.
const (
	idColumn    = "id"
	cityColumn  = "city"
	nameColumn  = "name"
	themeColumn = "theme"
	notesColumn = "notes"
	costColumn  = "cost_usd"
)

// LoadFile loads a catalogue store from a CSV file.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalogue: %w", err)
	}
	defer f.Close()

	store, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return store, nil
}

// Load reads CSV records into an immutable Store.
//
// The first row is the header. A "name" column is required; it supplies
// the free text that gets ranked, with "notes" appended when present.
// Records with an "id" column use it as the document ID, otherwise the
// ID is derived from the record content.
func Load(r io.Reader) (*Store, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return NewStore(nil)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[name] = i
	}
	if _, ok := columns[nameColumn]; !ok {
		return nil, fmt.Errorf("%w: missing %q column", ErrMissingColumn, nameColumn)
	}

	var docs []*core.Document
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", row, err)
		}
		row++

		doc, err := documentFromRecord(header, columns, record)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		docs = append(docs, doc)
	}

	slog.Default().Debug("loaded catalogue", "documents", len(docs))
	return NewStore(docs)
}

func documentFromRecord(header []string, columns map[string]int, record []string) (*core.Document, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	text := field(nameColumn)
	if notes := field(notesColumn); notes != "" {
		text = text + " " + notes
	}

	doc := &core.Document{
		City:  field(cityColumn),
		Text:  text,
		Theme: field(themeColumn),
	}

	// Passthrough columns stay available for downstream consumers.
	for i, name := range header {
		switch name {
		case idColumn, cityColumn, nameColumn, themeColumn:
			continue
		}
		if i < len(record) && record[i] != "" {
			if doc.Metadata == nil {
				doc.Metadata = make(map[string]string)
			}
			doc.Metadata[name] = record[i]
		}
	}

	if raw := field(idColumn); raw != "" {
		id, err := core.ParseID(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: id %q: %v", ErrMalformedRecord, raw, err)
		}
		doc.Id = id
	} else {
		doc.Id = core.IDFromContent(doc.City + "|" + doc.Text)
	}

	return doc, nil
}
