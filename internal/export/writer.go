package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// FileKind names the bulk file formats the platform accepts.
type FileKind string

const (
	FileSmartBid  FileKind = "smart-bid"
	FileNegatives FileKind = "negatives"
	FileIsolation FileKind = "isolation"
)

var bulkHeader = []string{
	"Record Type",
	"Campaign Name",
	"Ad Group Name",
	"Keyword or Product Targeting",
	"Match Type",
	"Bid",
	"Status",
}

var isolationHeader = append(append([]string{}, bulkHeader...),
	"Campaign Daily Budget", "Start Date")

// WriteCSV serializes bulk rows to the flat CSV format the platform's bulk
// upload expects. Isolation files get the budget and date columns appended
// to the header even when empty, so the file kind is explicit.
func WriteCSV(w io.Writer, kind FileKind, rows []BulkRow) error {
	cw := csv.NewWriter(w)

	isolation := kind == FileIsolation
	header := bulkHeader
	if isolation {
		header = isolationHeader
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, row := range rows {
		cells := []string{
			row.RecordType,
			row.CampaignName,
			row.AdGroupName,
			row.Keyword,
			row.MatchType,
			strconv.FormatFloat(row.Bid, 'f', 2, 64),
			row.Status,
		}
		if isolation {
			cells = append(cells,
				strconv.FormatFloat(row.DailyBudget, 'f', 2, 64),
				row.StartDate,
			)
		}
		if err := cw.Write(cells); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
