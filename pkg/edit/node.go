package edit

import (
	"github.com/matzehuels/jsongraph/pkg/graph"
	"github.com/matzehuels/jsongraph/pkg/jsonvalue"
)

// NodeValue rebuilds the value a node shows. No rows is null, a single
// keyless row is that row's value, and anything else is an object of the
// primitive rows. Container rows are left out.
func NodeValue(rows []graph.Row) jsonvalue.Value {
	if len(rows) == 0 {
		return nil
	}
	return rowsValue(rows)
}

// NodeText is the editable text of a node: "{}" for no rows, the bare value
// of a single keyless row, otherwise the indented object of primitive rows.
func NodeText(rows []graph.Row) string {
	if len(rows) == 0 {
		return "{}"
	}
	v := rowsValue(rows)
	if _, ok := v.(*jsonvalue.Object); !ok {
		return graph.FormatValue(v)
	}
	text, err := jsonvalue.Format(v)
	if err != nil {
		return "{}"
	}
	return text
}

func rowsValue(rows []graph.Row) jsonvalue.Value {
	if len(rows) == 1 && rows[0].Keyless() {
		return rows[0].Value
	}
	obj := jsonvalue.NewObject()
	for _, r := range rows {
		if r.Type.IsContainer() || r.Keyless() {
			continue
		}
		obj.Set(r.Key, r.Value)
	}
	return obj
}

// DisplayString is the initial text of a scalar input for v: empty for null,
// otherwise the value as it would be printed.
func DisplayString(v jsonvalue.Value) string {
	if v == nil {
		return ""
	}
	return graph.FormatValue(v)
}
