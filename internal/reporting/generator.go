package reporting

import (
	"errors"
	"fmt"
	"time"

	"funnel-simulator/internal/decision"
	"funnel-simulator/internal/domain"
)

// Format selects the output encoding.
type Format string

// Supported formats
const (
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
)

// Generator errors
var (
	ErrUnknownFormat     = errors.New("unknown report format")
	ErrUnsupportedResult = errors.New("result type not supported by format")
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatMarkdown, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Generator renders engine results in one format.
type Generator struct {
	format Format
	now    func() time.Time // Injectable clock for deterministic output
}

// NewGenerator creates a new report generator.
func NewGenerator(format Format) *Generator {
	return &Generator{
		format: format,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic output.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Format returns the generator's output format.
func (g *Generator) Format() Format {
	return g.format
}

// Generate renders v. Markdown output ends with a generation timestamp;
// CSV output is data only.
func (g *Generator) Generate(v any) (string, error) {
	switch g.format {
	case FormatMarkdown:
		body, err := g.markdown(v)
		if err != nil {
			return "", err
		}
		return body + fmt.Sprintf("_Generated: %s_\n", g.now().Format(time.RFC3339)), nil
	case FormatCSV:
		return g.csv(v)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, g.format)
	}
}

func (g *Generator) markdown(v any) (string, error) {
	switch r := v.(type) {
	case domain.Result:
		return RenderResultMarkdown(r), nil
	case *domain.OptimizationResult:
		return RenderOptimizationMarkdown(r), nil
	case *domain.PriceComparison:
		return RenderPriceComparisonMarkdown(r), nil
	case *decision.DecisionResult:
		return RenderDecisionMarkdown(r) + "\n", nil
	default:
		return "", fmt.Errorf("%w: %T as %s", ErrUnsupportedResult, v, g.format)
	}
}

func (g *Generator) csv(v any) (string, error) {
	switch r := v.(type) {
	case domain.Result:
		return RenderStepsCSV(r), nil
	case *domain.OptimizationResult:
		return RenderBudgetCSV(r), nil
	case *domain.PriceComparison:
		return RenderPriceComparisonCSV(r), nil
	default:
		return "", fmt.Errorf("%w: %T as %s", ErrUnsupportedResult, v, g.format)
	}
}
