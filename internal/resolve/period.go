/* Copyright (c) 2025 EvolutionIQ, Inc.
 * SPDX-License-Identifier: BSD-3-Clause */
package resolve

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charleseiq/eiq-manager-tools/internal/domain"
)

var (
	halfRe    = regexp.MustCompile(`^(\d{4})H([12])$`)
	quarterRe = regexp.MustCompile(`^(\d{4})Q([1-4])$`)
	yearRe    = regexp.MustCompile(`^(\d{4})$`)
)

// ParsePeriod resolves a period token (YYYY, YYYYH1, YYYYH2, YYYYQ1-Q4) to
// its inclusive calendar window. Tokens are case-insensitive and trimmed.
func ParsePeriod(token string) (domain.Period, error) {
	tok := strings.ToUpper(strings.TrimSpace(token))

	if m := halfRe.FindStringSubmatch(tok); m != nil {
		year, _ := strconv.Atoi(m[1])
		if m[2] == "1" {
			return mkPeriod(tok, year, 1, 1, year, 6, 30), nil
		}
		return mkPeriod(tok, year, 7, 1, year, 12, 31), nil
	}
	if m := quarterRe.FindStringSubmatch(tok); m != nil {
		year, _ := strconv.Atoi(m[1])
		q, _ := strconv.Atoi(m[2])
		sm := time.Month(3*(q-1) + 1)
		em := sm + 2
		return mkPeriod(tok, year, sm, 1, year, em, lastDay(year, em)), nil
	}
	if m := yearRe.FindStringSubmatch(tok); m != nil {
		year, _ := strconv.Atoi(m[1])
		return mkPeriod(tok, year, 1, 1, year, 12, 31), nil
	}
	return domain.Period{}, fmt.Errorf("invalid period format: %s. Use format: YYYYH1, YYYYH2, YYYYQ1-Q4, or YYYY (e.g., '2025H2', '2026Q1', '2025')", token)
}

func mkPeriod(key string, sy int, sm time.Month, sd, ey int, em time.Month, ed int) domain.Period {
	return domain.Period{
		Key:   key,
		Start: time.Date(sy, sm, sd, 0, 0, 0, 0, time.UTC),
		End:   time.Date(ey, em, ed, 0, 0, 0, 0, time.UTC),
	}
}

func lastDay(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// TimeRange resolves the analysis window from a period token or an explicit
// start/end pair. The two modes are mutually exclusive; passing both (or
// neither) is a usage error. When only dates are given, the period key is
// derived from the boundary pattern, falling back to "<start>_to_<end>".
func TimeRange(period, start, end string) (domain.Period, error) {
	hasPeriod := strings.TrimSpace(period) != ""
	hasDates := strings.TrimSpace(start) != "" || strings.TrimSpace(end) != ""
	switch {
	case hasPeriod && hasDates:
		return domain.Period{}, fmt.Errorf("--period and --start/--end are mutually exclusive")
	case hasPeriod:
		return ParsePeriod(period)
	case strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "":
		return domain.Period{}, fmt.Errorf("could not resolve date range: provide --period or both --start and --end")
	}

	s, err := time.Parse("2006-01-02", strings.TrimSpace(start))
	if err != nil { return domain.Period{}, fmt.Errorf("invalid --start date %q: %w", start, err) }
	e, err := time.Parse("2006-01-02", strings.TrimSpace(end))
	if err != nil { return domain.Period{}, fmt.Errorf("invalid --end date %q: %w", end, err) }
	if e.Before(s) { return domain.Period{}, fmt.Errorf("--end %s is before --start %s", end, start) }
	return domain.Period{Key: deriveKey(s, e), Start: s, End: e}, nil
}

// deriveKey maps boundary dates back onto a period token when they line up
// with a calendar half, quarter, or year.
func deriveKey(s, e time.Time) string {
	if s.Year() == e.Year() && s.Day() == 1 {
		y := s.Year()
		switch {
		case s.Month() == 1 && e.Month() == 12 && e.Day() == 31:
			return strconv.Itoa(y)
		case s.Month() == 1 && e.Month() == 6 && e.Day() == 30:
			return fmt.Sprintf("%dH1", y)
		case s.Month() == 7 && e.Month() == 12 && e.Day() == 31:
			return fmt.Sprintf("%dH2", y)
		}
		for q := 1; q <= 4; q++ {
			sm := time.Month(3*(q-1) + 1)
			em := sm + 2
			if s.Month() == sm && e.Month() == em && e.Day() == lastDay(y, em) {
				return fmt.Sprintf("%dQ%d", y, q)
			}
		}
	}
	return s.Format("2006-01-02") + "_to_" + e.Format("2006-01-02")
}

// FormatAnalysisPeriod renders the human-readable window used in prompts and
// report headers, e.g. "2025H2 (July 1 - December 31, 2025)".
func FormatAnalysisPeriod(p domain.Period) string {
	key := deriveKey(p.Start, p.End)
	if strings.Contains(key, "_to_") {
		return p.Start.Format("2006-01-02") + " to " + p.End.Format("2006-01-02")
	}
	return fmt.Sprintf("%s (%s - %s, %d)", key,
		p.Start.Format("January 2"), p.End.Format("January 2"), p.Start.Year())
}
