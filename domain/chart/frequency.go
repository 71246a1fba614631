package chart

import (
	"sort"

	"tabchart/domain/datareadiness/ingestion"
	"tabchart/internal/errors"

	"github.com/montanaflynn/stats"
)

// Aggregate counts the non-missing values of a column. Values are grouped
// by exact label equality and sorted by descending count; equal counts
// keep the order in which the labels were first seen. A column without
// any usable value fails with an EMPTY_COLUMN error.
func Aggregate(column string, values []ingestion.Value) (FrequencyTable, error) {
	index := make(map[string]int)
	var categories []Category

	for _, v := range values {
		if v.IsMissing {
			continue
		}
		label := v.Label()
		if i, ok := index[label]; ok {
			categories[i].Count++
			continue
		}
		index[label] = len(categories)
		categories = append(categories, Category{Label: label, Count: 1})
	}

	if len(categories) == 0 {
		return FrequencyTable{}, errors.EmptyColumn(column)
	}

	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Count > categories[j].Count
	})

	counts := make(stats.Float64Data, len(categories))
	for i, c := range categories {
		counts[i] = float64(c.Count)
	}
	total, err := counts.Sum()
	if err != nil {
		return FrequencyTable{}, errors.Wrapf(err, "summing counts of %q", column)
	}

	for i := range categories {
		categories[i].Percentage = float64(categories[i].Count) / total * 100
	}

	return FrequencyTable{
		Column:     column,
		Total:      int(total),
		Categories: categories,
	}, nil
}
