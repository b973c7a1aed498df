package store

import (
	"encoding/json"
	"fmt"

	"prism/pkg/dataset"
)

// document is the JSON payload shape shared by both dataset kinds. Column
// and node order is preserved so a decoded dataset iterates like the
// original.
type document struct {
	Kind    dataset.Kind `json:"kind"`
	Columns []column     `json:"columns,omitempty"`
	Nodes   []node       `json:"nodes,omitempty"`
	Edges   []edge       `json:"edges,omitempty"`
}

type column struct {
	Name    string    `json:"name"`
	Numeric []float64 `json:"numeric,omitempty"`
	Strings []string  `json:"strings,omitempty"`
	IsText  bool      `json:"isText,omitempty"`
}

type node struct {
	ID    string         `json:"id"`
	Props map[string]any `json:"props,omitempty"`
}

type edge struct {
	From  string         `json:"from"`
	To    string         `json:"to"`
	Props map[string]any `json:"props,omitempty"`
}

// encodeDataset serializes a dataset to its JSON document.
func encodeDataset(ds dataset.Dataset) ([]byte, error) {
	doc := document{Kind: ds.Kind()}
	switch d := ds.(type) {
	case dataset.Tabular:
		for _, name := range d.ColumnNames() {
			ct, _ := d.ColumnType(name)
			if ct == dataset.ColumnNumeric {
				values, err := d.NumericColumn(name)
				if err != nil {
					return nil, err
				}
				doc.Columns = append(doc.Columns, column{Name: name, Numeric: values})
				continue
			}
			values, err := d.StringColumn(name)
			if err != nil {
				return nil, err
			}
			doc.Columns = append(doc.Columns, column{Name: name, Strings: values, IsText: true})
		}
	case dataset.Graph:
		for _, id := range d.NodeIDs() {
			doc.Nodes = append(doc.Nodes, node{ID: id, Props: d.NodeProperties(id)})
		}
		for _, e := range d.Edges() {
			doc.Edges = append(doc.Edges, edge{From: e.From, To: e.To, Props: e.Properties})
		}
	default:
		return nil, fmt.Errorf("store: dataset %q has unknown kind %q", ds.Name(), ds.Kind())
	}
	return json.Marshal(doc)
}

// decodeDataset rebuilds a dataset from its JSON document.
func decodeDataset(name string, payload []byte) (dataset.Dataset, error) {
	var doc document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("store: decode dataset %q: %w", name, err)
	}

	switch doc.Kind {
	case dataset.KindTabular:
		tab := dataset.NewTable(name)
		for _, col := range doc.Columns {
			var err error
			if col.IsText {
				err = tab.AddStringColumn(col.Name, col.Strings)
			} else {
				err = tab.AddNumericColumn(col.Name, col.Numeric)
			}
			if err != nil {
				return nil, fmt.Errorf("store: rebuild dataset %q: %w", name, err)
			}
		}
		return tab, nil
	case dataset.KindGraph:
		g := dataset.NewGraph(name)
		for _, n := range doc.Nodes {
			if err := g.AddNode(n.ID, n.Props); err != nil {
				return nil, fmt.Errorf("store: rebuild dataset %q: %w", name, err)
			}
		}
		for _, e := range doc.Edges {
			if err := g.AddEdge(e.From, e.To, e.Props); err != nil {
				return nil, fmt.Errorf("store: rebuild dataset %q: %w", name, err)
			}
		}
		return g, nil
	default:
		return nil, fmt.Errorf("store: dataset %q has unknown kind %q", name, doc.Kind)
	}
}
