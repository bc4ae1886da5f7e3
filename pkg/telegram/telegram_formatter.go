package telegram

import (
	"fmt"
	"strings"
	"time"

	"golang-stock-fundamentals/internal/fundamentals/dto"
)

// FormatComputeRunSummary formats a derivation run summary into a Markdown
// string for Telegram.
func FormatComputeRunSummary(summary *dto.ComputeRunSummary) string {
	var builder strings.Builder

	builder.WriteString("--- 🧮 *Fundamentals Computation Run* ---\n\n")

	statusIcon := "✅"
	if summary.FailedSymbols > 0 || summary.Failed > 0 {
		statusIcon = "⚠️"
	}
	builder.WriteString(fmt.Sprintf("%s *Status:* %s\n", statusIcon, runStatus(summary.FailedSymbols+summary.Failed)))
	builder.WriteString(fmt.Sprintf("📈 *Symbols:* %d (failed: %d)\n", summary.Symbols, summary.FailedSymbols))
	builder.WriteString(fmt.Sprintf("🗓 *Periods:* %d\n", summary.Periods))
	builder.WriteString(fmt.Sprintf("💾 *Stored:* %d\n", summary.Inserted))
	if summary.Skipped > 0 {
		builder.WriteString(fmt.Sprintf("⏭ *Skipped:* %d\n", summary.Skipped))
	}
	if summary.Failed > 0 {
		builder.WriteString(fmt.Sprintf("❌ *Failed:* %d\n", summary.Failed))
	}
	builder.WriteString(fmt.Sprintf("⏱ *Duration:* %s\n", summary.FinishedAt.Sub(summary.StartedAt).Round(time.Second)))

	return builder.String()
}

// FormatIngestRunSummary formats an ingestion run summary into a Markdown
// string for Telegram.
func FormatIngestRunSummary(summary *dto.IngestRunSummary) string {
	var builder strings.Builder

	builder.WriteString("--- 📥 *Market Data Ingestion Run* ---\n\n")

	statusIcon := "✅"
	if summary.FailedSymbols > 0 {
		statusIcon = "⚠️"
	}
	builder.WriteString(fmt.Sprintf("%s *Status:* %s\n", statusIcon, runStatus(summary.FailedSymbols)))
	builder.WriteString(fmt.Sprintf("📈 *Symbols:* %d (failed: %d)\n", summary.Symbols, summary.FailedSymbols))
	builder.WriteString(fmt.Sprintf("📊 *Price Records:* %d\n", summary.PriceRecords))
	builder.WriteString(fmt.Sprintf("📄 *Statement Records:* %d\n", summary.StatementRecords))
	builder.WriteString(fmt.Sprintf("🏢 *Company Info Records:* %d\n", summary.InfoRecords))
	builder.WriteString(fmt.Sprintf("🎯 *Recommendation Records:* %d\n", summary.RecommendationRecords))
	builder.WriteString(fmt.Sprintf("🌱 *Sustainability Records:* %d\n", summary.SustainabilityRecords))
	builder.WriteString(fmt.Sprintf("⏱ *Duration:* %s\n", summary.FinishedAt.Sub(summary.StartedAt).Round(time.Second)))

	return builder.String()
}

func runStatus(failures int) string {
	if failures > 0 {
		return "Completed with failures"
	}
	return "Completed"
}
