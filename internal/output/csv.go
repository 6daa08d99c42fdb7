package output

import (
	"encoding/csv"
	"os"
)

// CSVCommitWriter writes harvest reports as CSV.
type CSVCommitWriter struct{}

// Write outputs one commit per row.
func (w *CSVCommitWriter) Write(report *HarvestReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	headers := []string{"CommitTime", "AuthorTime", "Repo", "Ref", "SHA", "Message"}
	if err := writer.Write(headers); err != nil {
		return err
	}

	for _, c := range report.Commits {
		row := []string{
			c.CommitTime.Format(reportDateTimeLayout),
			c.AuthorTime.Format(reportDateTimeLayout),
			c.Repo,
			c.Ref,
			c.ContentID,
			c.Message,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// CSVRepoWriter writes repository listings as CSV.
type CSVRepoWriter struct{}

// Write outputs one repository per row.
func (w *CSVRepoWriter) Write(report *RepoReport, options OutputOptions) error {
	writer, file, err := createCSVWriter(options.OutputPath)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	if err := writer.Write([]string{"Name", "Path"}); err != nil {
		return err
	}
	for _, loc := range report.Repositories {
		if err := writer.Write([]string{loc.Name, loc.Root}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func createCSVWriter(outputPath string) (*csv.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return csv.NewWriter(file), file, nil
	}
	return csv.NewWriter(os.Stdout), nil, nil
}
