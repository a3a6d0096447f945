package main

import (
	"encoding/json"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"romhash/internal/catalog"
	"romhash/internal/scan"
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
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
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

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderScanStats(stats scan.Stats) string {
	rows := [][]string{
		{"Platforms", strconv.Itoa(stats.Platforms)},
		{"Scanned", strconv.Itoa(stats.Scanned)},
		{"Added", strconv.Itoa(stats.Added)},
		{"Hashed", strconv.Itoa(stats.Hashed)},
		{"Skipped", strconv.Itoa(stats.Skipped)},
		{"Failed", strconv.Itoa(stats.Failed)},
		{"Unsupported", strconv.Itoa(stats.Unsupported)},
	}
	return renderTable([]string{"Result", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}

type romView struct {
	ID         int64  `json:"id"`
	Platform   string `json:"platform"`
	Path       string `json:"path"`
	Size       int64  `json:"size"`
	Hash       string `json:"hash,omitempty"`
	HashStatus string `json:"hash_status"`
	HashError  string `json:"hash_error,omitempty"`
	HashedAt   string `json:"hashed_at,omitempty"`
}

func newROMView(rom *catalog.ROM) romView {
	view := romView{
		ID:         rom.ID,
		Platform:   rom.PlatformSlug,
		Path:       rom.FilePath,
		Size:       rom.FileSize,
		Hash:       rom.RAHash,
		HashStatus: string(rom.HashStatus),
		HashError:  rom.HashError,
	}
	if rom.HashedAt != nil {
		view.HashedAt = rom.HashedAt.Format("2006-01-02 15:04:05")
	}
	return view
}

func renderROMTable(roms []*catalog.ROM) string {
	rows := make([][]string, 0, len(roms))
	for _, rom := range roms {
		view := newROMView(rom)
		hash := view.Hash
		if hash == "" {
			hash = "-"
		}
		rows = append(rows, []string{strconv.FormatInt(view.ID, 10), view.Platform, view.HashStatus, hash, view.Path})
	}
	return renderTable(
		[]string{"ID", "Platform", "Status", "RA Hash", "Path"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft},
	)
}
