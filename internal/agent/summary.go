// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/notescan/pkg/types"
)

const summarySystemPrompt = "You are an expert financial analyst specializing in summarizing Alpha Picks selections from Seeking Alpha. " +
	"Extract structured information about stock picks, recommendations, and analysis. " +
	"Always clearly mark the post date at the beginning of your summary."

const summaryPrompt = `Analyze the following Xiaohongshu posts about Seeking Alpha's Alpha Picks service.
Extract and summarize the key information in a structured format:

1. **Date of Alpha Picks Selection**: Extract the selection date mentioned in the posts (YYYY-MM-DD format)

2. **Added Companies**: List all companies/stock symbols that were ADDED to Alpha Picks. For each company include:
   - Stock symbol/ticker (e.g., AAPL, TSLA, MSFT)
   - Company name if mentioned
   - Recommendation (Buy/Hold/Sell) if specified
   - Brief reasoning or analysis if provided

3. **Removed Companies**: List all companies/stock symbols that were REMOVED from Alpha Picks. For each include:
   - Stock symbol/ticker
   - Company name if mentioned
   - Reason for removal if mentioned

4. **Recommendations Summary**: For each company mentioned (whether added, removed, or updated), include:
   - Stock symbol/ticker
   - Recommendation (Buy/Hold/Sell/Strong Buy/etc.)
   - Price target if mentioned
   - Brief reasoning or analysis

5. **Key Analysis Points**: Extract any important analysis, insights, commentary, or trends about:
   - Overall market outlook
   - Sector trends
   - Individual stock analysis
   - Risk factors
   - Investment themes

Format your response clearly with sections for each category. Make sure to extract information from BOTH the post text AND the OCR text extracted from images, as important details (like stock symbols and recommendations) are often in the images.

If multiple posts are provided, consolidate the information across all posts. If dates differ, organize by date with clear headings.`

// summaryTemperature leaves the model a little room for prose without
// letting the extracted facts drift.
const summaryTemperature = 0.3

// Summarize asks the model for a structured digest of the processed
// notes. targetDate, when non-zero, is called out so the summary carries
// the selection day even if the posts do not state it.
func Summarize(ctx context.Context, backend ChatBackend, noteList []types.Note, targetDate time.Time) (string, error) {
	if len(noteList) == 0 {
		return "", fmt.Errorf("no notes to summarize")
	}

	var b strings.Builder
	for i := range noteList {
		n := &noteList[i]
		fmt.Fprintf(&b, "--- Note %d ---\n", i+1)
		fmt.Fprintf(&b, "Title: %s\n", orNA(n.Title))
		fmt.Fprintf(&b, "Author: %s\n", orNA(n.Author))
		fmt.Fprintf(&b, "Selection Date: %s\n", orNA(n.SelectionDate))
		fmt.Fprintf(&b, "Publish Time: %s\n", orNA(n.PublishTimeString()))
		fmt.Fprintf(&b, "URL: %s\n\n", orNA(n.URL))
		fmt.Fprintf(&b, "Post Text:\n%s\n\n", orNA(n.PostText()))
		fmt.Fprintf(&b, "OCR Text (from images):\n%s\n\n", orNA(n.OCRText()))
		fmt.Fprintf(&b, "Quality Score: %.2f\n", n.Quality.Score)
		fmt.Fprintf(&b, "Quality Notes: %s\n", strings.Join(n.Quality.Notes, ", "))
		b.WriteString(strings.Repeat("=", 80) + "\n\n")
	}

	dateContext := ""
	if !targetDate.IsZero() {
		dateContext = fmt.Sprintf(
			"\n\nIMPORTANT: These posts are from %s. Please mark this date prominently in your summary if it's not already clear from the post content.",
			targetDate.Format("2006-01-02"))
	}

	resp, err := backend.Chat(ctx, ChatRequest{
		Temperature: summaryTemperature,
		Messages: []Message{
			{Role: "system", Content: summarySystemPrompt},
			{Role: "user", Content: summaryPrompt + dateContext + "\n\n--- Post Content ---\n\n" + b.String()},
		},
	})
	if err != nil {
		return "", fmt.Errorf("summary completion: %w", err)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
