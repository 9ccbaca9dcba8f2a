// -- internal/reporting/reporter.go --
package reporting

import (
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/xkilldash9x/exposcan/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Reporter defines the interface for writing a finished assessment to an
// output.
type Reporter interface {
	// Write serializes a single assessment.
	Write(a *schemas.Assessment) error
	// Close finalizes the report and closes any underlying resources (e.g., file handles).
	Close() error
}

// nopWriteCloser wraps an io.Writer and provides a no-op Close method.
type nopWriteCloser struct {
	io.Writer
}

func (nwc *nopWriteCloser) Close() error {
	return nil
}

// New creates a reporter for the given format writing to outputPath.
// An empty path or "stdout" writes to standard output.
func New(format, outputPath string) (Reporter, error) {
	var writer io.WriteCloser
	isStdOut := outputPath == "" || outputPath == "stdout"

	if isStdOut {
		// Wrap Stdout so Close() is a no-op.
		writer = &nopWriteCloser{os.Stdout}
	} else {
		f, err := os.Create(outputPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create output file %s: %w", outputPath, err)
		}
		writer = f
	}

	switch format {
	case "json":
		return &jsonReporter{w: writer}, nil
	case "text":
		return &textReporter{w: writer}, nil
	default:
		if !isStdOut {
			writer.Close()
		}
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// jsonReporter emits the assessment in its canonical transport shape.
type jsonReporter struct {
	w io.WriteCloser
}

func (r *jsonReporter) Write(a *schemas.Assessment) error {
	enc := json.NewEncoder(r.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(a); err != nil {
		return fmt.Errorf("failed to encode assessment: %w", err)
	}
	return nil
}

func (r *jsonReporter) Close() error {
	return r.w.Close()
}

// textReporter emits a terminal-friendly summary.
type textReporter struct {
	w io.WriteCloser
}

func (r *textReporter) Write(a *schemas.Assessment) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Exposure assessment for %s\n", a.Email)
	fmt.Fprintf(&b, "Scan ID:    %s\n", a.ScanID)
	fmt.Fprintf(&b, "Risk score: %d/100\n\n", a.RiskScore)

	if len(a.Breaches) == 0 {
		b.WriteString("No breaches detected.\n")
	} else {
		fmt.Fprintf(&b, "Found in %d breach source(s):\n", len(a.Breaches))
		for _, label := range a.Breaches {
			fmt.Fprintf(&b, "  - %s\n", label)
		}
	}

	if a.Social.Found {
		fmt.Fprintf(&b, "\nPublic profile: %d followers, %d public repos\n",
			a.Social.FollowerCount, a.Social.PublicRepoCount)
	} else {
		b.WriteString("\nNo public profile found.\n")
	}

	if a.Degraded.Breach || a.Degraded.Profile {
		b.WriteString("\nWarning: one or more providers were unavailable; results are partial.\n")
	}

	fmt.Fprintf(&b, "\nRecommended actions (%d):\n", len(a.Recommendations))
	for i, rec := range a.Recommendations {
		fmt.Fprintf(&b, "%2d. [%s] %s\n", i+1, strings.ToUpper(string(rec.Level)), rec.Title)
		for _, item := range rec.ActionItems {
			fmt.Fprintf(&b, "      * %s\n", item)
		}
	}

	if _, err := io.WriteString(r.w, b.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func (r *textReporter) Close() error {
	return r.w.Close()
}
