package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"sheetq/pkg/config"
	"sheetq/pkg/frame"
	"sheetq/pkg/gsheet"

	log "github.com/sirupsen/logrus"
)

func pushCmd() *cobra.Command {
	var (
		sheetName  string
		cell       string
		replace    bool
		rows       int64
		cols       int64
		formatPath string
		xlsxSheet  string
		noHeader   bool
	)

	cmd := &cobra.Command{
		Use:   "push FILE",
		Short: "Write a CSV or XLSX file to a worksheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var (
				f   *frame.Frame
				err error
			)
			switch strings.ToLower(filepath.Ext(path)) {
			case ".csv":
				f, err = frame.ReadCSV(path)
			case ".xlsx":
				f, err = frame.ReadXLSX(path, xlsxSheet)
			default:
				return fmt.Errorf("unsupported file type: %s", path)
			}
			if err != nil {
				return err
			}
			log.Debugf("Loaded %d rows x %d cols from %s", f.NumRows(), f.NumCols(), path)

			asset := gsheet.Asset{
				Frame:      f,
				Location:   cell,
				OmitHeader: noHeader,
			}
			if formatPath != "" {
				formats, err := config.LoadFormats(formatPath)
				if err != nil {
					return err
				}
				asset.Formats = formats
			}

			sp, _, err := openSession(cmd.Context())
			if err != nil {
				return err
			}

			if sheetName == "" {
				sheetName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			var ws *gsheet.Worksheet
			if replace {
				ws, err = sp.CreateWorksheet(cmd.Context(), sheetName, rows, cols, true)
			} else {
				ws, err = sp.Worksheet(cmd.Context(), sheetName)
			}
			if err != nil {
				return err
			}

			err = ws.Do(cmd.Context(), func(w *gsheet.Worksheet) error {
				return w.WriteAsset(asset)
			})
			if err != nil {
				return err
			}

			if ws.IsLocalPreview() {
				previewPath, err := ws.PreviewPath()
				if err != nil {
					return err
				}
				log.Infof("Preview rendered to %s", previewPath)
			} else {
				log.Infof("Pushed %s to worksheet %q", path, sheetName)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sheetName, "sheet", "", "Target worksheet name (default: file name)")
	cmd.Flags().StringVar(&cell, "cell", "A1", "Top-left cell for the write")
	cmd.Flags().BoolVar(&replace, "replace", false, "Recreate the worksheet before writing")
	cmd.Flags().Int64Var(&rows, "rows", 1000, "Row count when creating the worksheet")
	cmd.Flags().Int64Var(&cols, "cols", 26, "Column count when creating the worksheet")
	cmd.Flags().StringVar(&formatPath, "format", "", "JSON format-config file applied after the write")
	cmd.Flags().StringVar(&xlsxSheet, "xlsx-sheet", "", "Source sheet within an XLSX file (default: first)")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "Do not write the column-name row")

	return cmd
}
