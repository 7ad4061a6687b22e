package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/seatwatch/internal/models"
	"github.com/rs/zerolog"
)

const (
	// minDataCells is the cell count below which a row is only accepted when top-aligned.
	minDataCells = 7
	codeCell     = 1
)

var (
	courseCodeRegex = regexp.MustCompile(`\b([A-Z]{3}\d{3})\b`)
	seatsRegex      = regexp.MustCompile(`\d+`)
)

// CourseExtractor turns course list pages into snapshots
type CourseExtractor struct {
	logger zerolog.Logger
}

// NewCourseExtractor creates a new course extractor
func NewCourseExtractor(logger zerolog.Logger) *CourseExtractor {
	return &CourseExtractor{
		logger: logger.With().Str("component", "CourseExtractor").Logger(),
	}
}

// Extract parses one page. Rows that do not look like course rows are
// skipped; a page without any yields an empty snapshot.
func (e *CourseExtractor) Extract(content string) *models.Snapshot {
	snapshot := models.NewSnapshot()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		e.logger.Warn().Err(err).Msg("Failed to parse page, treating as empty")
		return snapshot
	}

	rows, skipped := 0, 0
	doc.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		rows++
		record, ok := parseRow(tr.AttrOr("valign", ""), cellTexts(tr))
		if !ok {
			skipped++
			return
		}
		snapshot.Set(record)
	})

	e.logger.Debug().
		Int("rows", rows).
		Int("skipped", skipped).
		Int("courses", snapshot.Len()).
		Msg("Extracted courses from page")

	return snapshot
}

// ExtractCourses parses one page without logging.
func ExtractCourses(content string) *models.Snapshot {
	return NewCourseExtractor(zerolog.Nop()).Extract(content)
}

// parseRow decides whether a table row is a course row. It reports false for
// header, spacer and malformed rows.
func parseRow(valign string, cells []string) (models.CourseRecord, bool) {
	if len(cells) == 0 {
		return models.CourseRecord{}, false
	}
	if !strings.EqualFold(strings.TrimSpace(valign), "top") && len(cells) < minDataCells {
		return models.CourseRecord{}, false
	}
	if len(cells) <= codeCell {
		return models.CourseRecord{}, false
	}

	match := courseCodeRegex.FindStringSubmatch(cells[codeCell])
	if match == nil {
		return models.CourseRecord{}, false
	}

	seatsText := seatsRegex.FindString(cells[len(cells)-1])
	if seatsText == "" {
		return models.CourseRecord{}, false
	}
	seats, err := strconv.Atoi(seatsText)
	if err != nil {
		// overflow
		return models.CourseRecord{}, false
	}

	return models.NewCourseRecord(match[1], seats), true
}

func cellTexts(tr *goquery.Selection) []string {
	cells := tr.Find("td")
	texts := make([]string, 0, cells.Length())
	for _, node := range cells.Nodes {
		texts = append(texts, nodeText(node))
	}
	return texts
}
