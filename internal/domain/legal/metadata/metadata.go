// Package metadata assembles the legal metadata attached to a search hit.
package metadata

import (
	"github.com/kailas-cloud/lexsearch/internal/domain/legal/extract"
)

// Timeline holds the first date playing each procedural role.
type Timeline struct {
	FilingDate  string
	HearingDate string
	Deadline    string
}

// Metadata is best-effort legal metadata for one document. Empty strings mean absent.
type Metadata struct {
	CaseNumber   string
	Date         string
	DocumentType string
	Parties      []string
	Court        string
	Judge        string
	Attorneys    []string
	Citations    []string
	Timeline     Timeline
	Arguments    extract.Arguments
}

// Build runs every classifier over the whole document content.
// CaseNumber and Date are the first citation and first date found, not the ones
// nearest any matched passage. fallbackType is used when no document type is detected.
func Build(content, fallbackType string) Metadata {
	dates := extract.ExtractDates(content)
	citations := extract.ExtractCaseCitations(content)

	parties := extract.ExtractParties(content)
	partyNames := make([]string, len(parties))
	for i, p := range parties {
		partyNames[i] = p.String()
	}

	m := Metadata{
		Parties:   partyNames,
		Attorneys: extract.ExtractAttorneys(content),
		Citations: citations,
		Arguments: extract.ExtractArguments(content),
	}

	if len(citations) > 0 {
		m.CaseNumber = citations[0]
	}
	if len(dates) > 0 {
		m.Date = dates[0].Date
	}
	if t, ok := extract.DetectDocumentType(content); ok {
		m.DocumentType = t
	} else {
		m.DocumentType = fallbackType
	}
	m.Court, _ = extract.DetectCourt(content)
	m.Judge, _ = extract.ExtractJudge(content)

	m.Timeline.FilingDate, _ = extract.FirstDate(dates, extract.DateMention.IsFiling)
	m.Timeline.HearingDate, _ = extract.FirstDate(dates, extract.DateMention.IsHearing)
	m.Timeline.Deadline, _ = extract.FirstDate(dates, extract.DateMention.IsDeadline)

	return m
}
