// Package output provides different formats of output for evaluation results.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
)

// EvaluationFormatter formats the named evaluation measures of one split.
type EvaluationFormatter func(split string, results map[string]float64) (string, error)

// Formatters maps the names accepted on the command line to formatters.
var Formatters = map[string]EvaluationFormatter{
	"text": TextEvaluationFormatter,
	"json": JsonEvaluationFormatter,
	"csv":  CsvEvaluationFormatter,
}

func names(results map[string]float64) []string {
	n := make([]string, 0, len(results))
	for name := range results {
		n = append(n, name)
	}
	sort.Strings(n)
	return n
}

// TextEvaluationFormatter outputs one tab separated measure per line.
func TextEvaluationFormatter(split string, results map[string]float64) (string, error) {
	b := bytes.NewBufferString("")
	for _, name := range names(results) {
		fmt.Fprintf(b, "%s\t%s\t%v\n", split, name, results[name])
	}
	return b.String(), nil
}

// JsonEvaluationFormatter outputs results in a JSON format.
func JsonEvaluationFormatter(split string, results map[string]float64) (string, error) {
	v, err := json.MarshalIndent(map[string]map[string]float64{split: results}, "", "    ")
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// CsvEvaluationFormatter outputs results in CSV format, with a header row of measure names.
func CsvEvaluationFormatter(split string, results map[string]float64) (string, error) {
	b := bytes.NewBufferString("")
	w := csv.NewWriter(b)
	n := names(results)
	header := append([]string{"Split"}, n...)
	record := []string{split}
	for _, name := range n {
		record = append(record, strconv.FormatFloat(results[name], 'f', -1, 64))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}
	if err := w.Write(record); err != nil {
		return "", err
	}
	w.Flush()
	return b.String(), w.Error()
}
