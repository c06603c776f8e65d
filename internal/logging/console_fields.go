package logging

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
)

type infoField struct {
	label string
	value string
}

// infoHighlightKeys are shown first, in this order, on INFO and above.
var infoHighlightKeys = []string{
	FieldAlert,
	FieldEventType,
	FieldChapterName,
	"chapter_count",
	"segment_count",
	"output_dir",
	"artifact",
	"attempt",
	FieldProgress,
	"error",
	FieldErrorKind,
	FieldErrorHint,
	FieldImpact,
	"duration",
}

var fieldLabels = map[string]string{
	FieldAlert:       "Alert",
	FieldEventType:   "Event",
	FieldChapterName: "Chapter",
	FieldErrorHint:   "Hint",
	FieldErrorKind:   "Error Kind",
	FieldProgress:    "Progress",
	"chapter_count":  "Chapters",
	"segment_count":  "Segments",
	"output_dir":     "Output",
}

func selectInfoFields(attrs []kv) ([]infoField, int) {
	if len(attrs) == 0 {
		return nil, 0
	}
	used := make([]bool, len(attrs))
	result := make([]infoField, 0, len(attrs))
	hidden := 0

	consider := func(idx int) {
		used[idx] = true
		attr := attrs[idx]
		if skipInfoKey(attr.key) {
			return
		}
		if isDebugOnlyKey(attr.key) {
			hidden++
			return
		}
		value := formatValueForKey(attr.key, attr.value)
		if len(value) > 160 && attr.key != "error" {
			hidden++
			return
		}
		result = append(result, infoField{label: displayLabel(attr.key), value: value})
	}

	for _, key := range infoHighlightKeys {
		for idx, attr := range attrs {
			if !used[idx] && attr.key == key {
				consider(idx)
				break
			}
		}
	}
	for idx := range attrs {
		if !used[idx] {
			consider(idx)
		}
	}
	return result, hidden
}

func formatValueForKey(key string, v slog.Value) string {
	v = v.Resolve()
	switch {
	case v.Kind() == slog.KindDuration:
		return v.Duration().Round(time.Millisecond).String()
	case v.Kind() == slog.KindBool:
		if v.Bool() {
			return "yes"
		}
		return "no"
	case key == FieldProgress && v.Kind() == slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', 0, 64) + "%"
	}
	return formatValue(v)
}

func skipInfoKey(key string) bool {
	switch key {
	case "", FieldComponent, FieldSource, FieldChapter, FieldStage:
		return true
	}
	return false
}

func isDebugOnlyKey(key string) bool {
	if key == FieldRunID || key == "args" || key == "command" {
		return true
	}
	return strings.HasSuffix(key, "_path") || strings.HasSuffix(key, "_ms")
}

func displayLabel(key string) string {
	if label, ok := fieldLabels[key]; ok {
		return label
	}
	parts := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' || r == '.' })
	for i, part := range parts {
		parts[i] = strings.ToUpper(part[:1]) + strings.ToLower(part[1:])
	}
	return strings.Join(parts, " ")
}
