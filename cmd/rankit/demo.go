package main

import (
	"github.com/poiesic/rankit/catalog"
	"github.com/poiesic/rankit/core"
)

// demoTexts is a small travel-activity corpus for trying the strategies
// without a dataset file.
var demoTexts = []string{
	"San Francisco Chinatown cheap food tour",
	"Golden Gate Bridge scenic photography spot",
	"SF food trucks: affordable street eats near SOMA",
	"Jazz club in New Orleans on Frenchmen Street",
	"Seattle Pike Place Market seafood tasting",
	"Miami South Beach nightlife and bars",
	"Budget-friendly meal in San Francisco",
	"San Francisco farmers market local produce",
	"Austin BBQ and live music on Rainey Street",
	"Orlando theme parks for families",
}

// demoStore builds an in-memory catalogue from the demo corpus.
func demoStore() (*catalog.Store, error) {
	docs := make([]*core.Document, len(demoTexts))
	for i, text := range demoTexts {
		docs[i] = &core.Document{
			Id:   core.ID(i + 1),
			Text: text,
		}
	}
	return catalog.NewStore(docs)
}
