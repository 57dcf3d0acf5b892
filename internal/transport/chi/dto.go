package chi

import (
	"time"

	"github.com/kailas-cloud/lexsearch/internal/domain/document"
	"github.com/kailas-cloud/lexsearch/internal/domain/legal/metadata"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/chunk"
	"github.com/kailas-cloud/lexsearch/internal/domain/search/result"
	domusage "github.com/kailas-cloud/lexsearch/internal/domain/usage"
)

type errorResponse struct {
	Error string `json:"error"`
}

type documentInput struct {
	ID         string  `json:"id"`
	Content    *string `json:"content"`
	Type       string  `json:"type,omitempty"`
	UploadedAt string  `json:"uploadedAt,omitempty"`
}

type searchRequest struct {
	Query      string          `json:"query"`
	Documents  []documentInput `json:"documents"`
	SearchType string          `json:"searchType"`
}

type searchResultItem struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	Context   string       `json:"context"`
	Relevance float64      `json:"relevance"`
	Section   string       `json:"section,omitempty"`
	Metadata  *metadataDTO `json:"metadata,omitempty"`
}

type timelineDTO struct {
	FilingDate  string `json:"filingDate,omitempty"`
	HearingDate string `json:"hearingDate,omitempty"`
	Deadline    string `json:"deadline,omitempty"`
}

type argumentsDTO struct {
	Claims           []string `json:"claims"`
	CounterArguments []string `json:"counterArguments"`
	Evidence         []string `json:"evidence"`
	Authorities      []string `json:"authorities"`
}

// metadataDTO keeps list fields as arrays and drops absent scalars.
type metadataDTO struct {
	CaseNumber   string       `json:"caseNumber,omitempty"`
	Date         string       `json:"date,omitempty"`
	DocumentType string       `json:"documentType,omitempty"`
	Parties      []string     `json:"parties"`
	Court        string       `json:"court,omitempty"`
	Judge        string       `json:"judge,omitempty"`
	Attorneys    []string     `json:"attorneys"`
	Citations    []string     `json:"citations"`
	Timeline     timelineDTO  `json:"timeline"`
	Arguments    argumentsDTO `json:"arguments"`
}

type extractRequest struct {
	Content *string `json:"content"`
	Type    string  `json:"type,omitempty"`
}

type chunkDTO struct {
	Text      string `json:"text"`
	Section   string `json:"section,omitempty"`
	Paragraph string `json:"paragraph"`
}

type extractResponse struct {
	metadataDTO
	Chunks []chunkDTO `json:"chunks"`
}

type usageMetricsDTO struct {
	EmbeddingRequests int64 `json:"embeddingRequests"`
	Tokens            int64 `json:"tokens"`
}

type budgetStatusDTO struct {
	TokensLimit     int64      `json:"tokensLimit"`
	TokensRemaining int64      `json:"tokensRemaining"`
	IsExhausted     bool       `json:"isExhausted"`
	ResetsAt        *time.Time `json:"resetsAt,omitempty"`
}

type usageResponse struct {
	Period        string          `json:"period"`
	PeriodStartAt *time.Time      `json:"periodStartAt,omitempty"`
	PeriodEndAt   *time.Time      `json:"periodEndAt,omitempty"`
	Usage         usageMetricsDTO `json:"usage"`
	Budget        budgetStatusDTO `json:"budget"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func documentsFromInput(in []documentInput) []document.Document {
	if in == nil {
		return nil
	}
	docs := make([]document.Document, len(in))
	for i, d := range in {
		docs[i] = document.New(d.ID, d.Content, d.Type, d.UploadedAt)
	}
	return docs
}

func searchResultToDTO(r *result.Result) searchResultItem {
	item := searchResultItem{
		ID:        r.ID(),
		Text:      r.Text(),
		Context:   r.Context(),
		Relevance: r.Relevance(),
		Section:   r.Section(),
	}
	if md := r.Metadata(); md != nil {
		dto := metadataToDTO(md)
		item.Metadata = &dto
	}
	return item
}

func metadataToDTO(md *metadata.Metadata) metadataDTO {
	return metadataDTO{
		CaseNumber:   md.CaseNumber,
		Date:         md.Date,
		DocumentType: md.DocumentType,
		Parties:      orEmpty(md.Parties),
		Court:        md.Court,
		Judge:        md.Judge,
		Attorneys:    orEmpty(md.Attorneys),
		Citations:    orEmpty(md.Citations),
		Timeline: timelineDTO{
			FilingDate:  md.Timeline.FilingDate,
			HearingDate: md.Timeline.HearingDate,
			Deadline:    md.Timeline.Deadline,
		},
		Arguments: argumentsDTO{
			Claims:           orEmpty(md.Arguments.Claims),
			CounterArguments: orEmpty(md.Arguments.CounterArguments),
			Evidence:         orEmpty(md.Arguments.Evidence),
			Authorities:      orEmpty(md.Arguments.Authorities),
		},
	}
}

func chunksToDTO(chunks []chunk.Chunk) []chunkDTO {
	out := make([]chunkDTO, len(chunks))
	for i, c := range chunks {
		out[i] = chunkDTO{Text: c.Text, Section: c.Section, Paragraph: c.Paragraph}
	}
	return out
}

func usageReportToDTO(report *domusage.Report) usageResponse {
	resp := usageResponse{
		Period: string(report.Period()),
		Usage: usageMetricsDTO{
			EmbeddingRequests: report.Consumption().EmbeddingRequests(),
			Tokens:            report.Consumption().Tokens(),
		},
		Budget: budgetStatusDTO{
			TokensLimit:     report.Budget().TokensLimit(),
			TokensRemaining: report.Budget().TokensRemaining(),
			IsExhausted:     report.Budget().IsExhausted(),
		},
	}

	if report.PeriodStart() > 0 {
		start := time.UnixMilli(report.PeriodStart()).UTC()
		end := time.UnixMilli(report.PeriodEnd()).UTC()
		resp.PeriodStartAt = &start
		resp.PeriodEndAt = &end
	}

	if report.Budget().ResetsAt() > 0 {
		resetsAt := time.UnixMilli(report.Budget().ResetsAt()).UTC()
		resp.Budget.ResetsAt = &resetsAt
	}
	return resp
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
