package forensic

// CaseSummary aggregates statistics over the ledger. It is derived purely
// from the record sequence; generating it does not mutate anything except
// the audit log.
type CaseSummary struct {
	CaseNumber      CaseNumber
	TotalFiles      int
	TotalSizeBytes  int64
	TotalSizeMiB    float64
	CountByCategory map[Category]int
}

// Summary computes aggregate statistics over the current ledger and records
// the summary generation in the audit log.
func (s *CaseService) Summary() (*CaseSummary, error) {
	records := s.ledger.Records()

	summary := &CaseSummary{
		CaseNumber:      s.caseNumber,
		TotalFiles:      len(records),
		CountByCategory: make(map[Category]int),
	}
	for _, r := range records {
		summary.TotalSizeBytes += r.Descriptor.Size
		summary.TotalSizeMiB += r.Descriptor.SizeMiB
		summary.CountByCategory[r.Descriptor.Category]++
	}

	if err := s.audit.Appendf("Evidence summary: %d files, %.2f MB total",
		summary.TotalFiles, summary.TotalSizeMiB); err != nil {
		return nil, err
	}
	return summary, nil
}
