package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"chaptersplit/internal/audio"
	"chaptersplit/internal/chapters"
	"chaptersplit/internal/timecode"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := range columns {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := range columns {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := range columns {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// renderChapterTable lists intervals with their audio outcome. Without a
// result the extensionless file stem is shown.
func renderChapterTable(intervals []chapters.Interval, results []audio.ChapterResult) string {
	byIndex := make(map[int]audio.ChapterResult, len(results))
	for _, res := range results {
		byIndex[res.Index] = res
	}
	rows := make([][]string, 0, len(intervals))
	for i, iv := range intervals {
		file := chapters.FileName(i, iv.Name, "")
		status := "-"
		if res, ok := byIndex[i]; ok {
			file = filepath.Base(res.Path)
			status = "ok"
			if !res.OK() {
				status = "failed"
			}
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", i),
			timecode.MillisToTimecode(iv.Start),
			timecode.MillisToTimecode(iv.End),
			formatMillis(iv.Duration()),
			iv.Name,
			file,
			status,
		})
	}
	return renderTable(
		[]string{"#", "Start", "End", "Length", "Name", "File", "Audio"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
	)
}

func formatMillis(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	return d.Truncate(time.Second).String()
}
