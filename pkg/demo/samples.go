package demo

import (
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/document"
)

func barDoc(*rand.Rand) *document.Document {
	return &document.Document{
		Keys: document.Keys{X: "letter", Series: []string{"frequency"}},
		Data: data.Dataset{
			{"letter": "A", "frequency": 0.08167},
			{"letter": "B", "frequency": 0.01492},
			{"letter": "C", "frequency": 0.02782},
			{"letter": "D", "frequency": 0.04253},
			{"letter": "E", "frequency": 0.12702},
		},
	}
}

func monthly() data.Dataset {
	return data.Dataset{
		{"date": "2023-01-01", "value": 30.0},
		{"date": "2023-02-01", "value": 45.0},
		{"date": "2023-03-01", "value": 35.0},
		{"date": "2023-04-01", "value": 80.0},
		{"date": "2023-05-01", "value": 50.0},
	}
}

func lineDoc(*rand.Rand) *document.Document {
	return &document.Document{
		Keys:    document.Keys{X: "date", Series: []string{"value"}},
		Options: document.Options{Time: true},
		Data:    monthly(),
	}
}

func areaDoc(*rand.Rand) *document.Document {
	return &document.Document{
		Keys:    document.Keys{X: "date", Series: []string{"value"}},
		Options: document.Options{Time: true},
		Data:    monthly(),
	}
}

func pieDoc(*rand.Rand) *document.Document {
	return &document.Document{
		Keys: document.Keys{Label: "label", Value: "value"},
		Data: data.Dataset{
			{"label": "A", "value": 25.0},
			{"label": "B", "value": 35.0},
			{"label": "C", "value": 20.0},
			{"label": "D", "value": 20.0},
		},
	}
}

func radarDoc(*rand.Rand) *document.Document {
	return &document.Document{
		Keys: document.Keys{Angle: "angle", Radius: "r"},
		Data: data.Dataset{
			{"angle": "Math", "r": 120.0},
			{"angle": "Art", "r": 80.0},
			{"angle": "Science", "r": 100.0},
			{"angle": "History", "r": 60.0},
			{"angle": "Sports", "r": 90.0},
		},
	}
}

func scatterDoc(rng *rand.Rand) *document.Document {
	rows := make(data.Dataset, 20)
	for i := range rows {
		rows[i] = data.Row{
			"x":    round2(rng.Float64() * 100),
			"y":    round2(rng.Float64() * 100),
			"size": round2(rng.Float64() * 100),
		}
	}
	return &document.Document{Keys: document.Keys{X: "x", Y: "y"}, Data: rows}
}

func bubbleDoc(rng *rand.Rand) *document.Document {
	rows := make(data.Dataset, 15)
	for i := range rows {
		rows[i] = data.Row{
			"name": fmt.Sprintf("item %d", i+1),
			"x":    round2(rng.Float64() * 100),
			"y":    round2(rng.Float64() * 100),
			"z":    round2(rng.Float64()*50 + 10),
		}
	}
	return &document.Document{Keys: document.Keys{X: "x", Y: "y", Z: "z"}, Data: rows}
}

func heatmapDoc(rng *rand.Rand) *document.Document {
	rows := make(data.Dataset, 15)
	for i := range rows {
		bins := make([]any, 8)
		for j := range bins {
			bins[j] = map[string]any{"bin": float64(j), "count": float64(rng.IntN(50))}
		}
		rows[i] = data.Row{"bin": float64(i), "bins": bins}
	}
	return &document.Document{
		Keys:    document.Keys{Bins: "bins"},
		Options: document.Options{ColorRange: []string{"#fbe7f3", "#a855f7"}},
		Data:    rows,
	}
}

func treemapDoc(*rand.Rand) *document.Document {
	return &document.Document{
		Hierarchy: &data.Node{
			Name: "root",
			Children: []*data.Node{
				{Name: "A", Size: 100},
				{Name: "B", Size: 60},
				{Name: "C", Size: 40},
				{Name: "D", Size: 80},
			},
		},
	}
}

func sankeyDoc(*rand.Rand) *document.Document {
	return &document.Document{
		Flow: &data.Flow{
			Nodes: []data.FlowNode{{Name: "A"}, {Name: "B"}, {Name: "C"}, {Name: "D"}},
			Links: []data.FlowLink{
				{Source: 0, Target: 2, Value: 50},
				{Source: 1, Target: 2, Value: 30},
				{Source: 2, Target: 3, Value: 80},
			},
		},
	}
}

func chordDoc(*rand.Rand) *document.Document {
	return &document.Document{
		Matrix: [][]float64{
			{1197, 587, 891},
			{195, 1004, 206},
			{801, 1614, 809},
		},
		Labels: []string{"A", "B", "C"},
	}
}

func candlestickDoc(*rand.Rand) *document.Document {
	return &document.Document{
		Keys: document.Keys{X: "date", Open: "open", High: "high", Low: "low", Close: "close"},
		Data: data.Dataset{
			{"date": "2024-01-01", "open": 150.0, "high": 155.0, "low": 148.0, "close": 153.0},
			{"date": "2024-01-02", "open": 153.0, "high": 158.0, "low": 152.0, "close": 157.0},
			{"date": "2024-01-03", "open": 157.0, "high": 160.0, "low": 155.0, "close": 155.0},
			{"date": "2024-01-04", "open": 155.0, "high": 157.0, "low": 150.0, "close": 152.0},
			{"date": "2024-01-05", "open": 152.0, "high": 159.0, "low": 151.0, "close": 158.0},
			{"date": "2024-01-06", "open": 158.0, "high": 162.0, "low": 157.0, "close": 161.0},
			{"date": "2024-01-07", "open": 161.0, "high": 165.0, "low": 160.0, "close": 163.0},
			{"date": "2024-01-08", "open": 163.0, "high": 163.0, "low": 158.0, "close": 159.0},
		},
	}
}

func funnelDoc(*rand.Rand) *document.Document {
	return &document.Document{
		Keys: document.Keys{Step: "step", Value: "value"},
		Data: data.Dataset{
			{"step": "A", "value": 100.0},
			{"step": "B", "value": 80.0},
			{"step": "C", "value": 50.0},
			{"step": "D", "value": 20.0},
		},
	}
}

func radialBarDoc(*rand.Rand) *document.Document {
	return &document.Document{
		Keys:    document.Keys{Value: "value", Label: "name"},
		Options: document.Options{Colors: []string{"#3b82f6", "#10b981"}},
		Data: data.Dataset{
			{"name": "A", "value": 80.0},
			{"name": "B", "value": 50.0},
		},
	}
}

func waffleDoc(*rand.Rand) *document.Document {
	return &document.Document{
		Keys: document.Keys{Value: "value", Label: "label"},
		Data: data.Dataset{
			{"label": "Yes", "value": 58.0},
			{"label": "No", "value": 27.0},
			{"label": "Unsure", "value": 15.0},
		},
	}
}

func compositeDoc(*rand.Rand) *document.Document {
	return &document.Document{
		Keys: document.Keys{X: "m", Bar: "v", Line: "l"},
		Data: data.Dataset{
			{"m": "A", "v": 400.0, "l": 15.0},
			{"m": "B", "v": 300.0, "l": 30.0},
			{"m": "C", "v": 500.0, "l": 25.0},
			{"m": "D", "v": 200.0, "l": 10.0},
			{"m": "E", "v": 450.0, "l": 40.0},
		},
	}
}
