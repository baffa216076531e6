package request

// ReportSummaryRequest represents the summary query string
type ReportSummaryRequest struct {
	Period string `form:"period"`
}
