package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"CardDesk/internal/model"
	"CardDesk/internal/recorder"
)

func money(v float64) string {
	return "$" + humanize.CommafWithDigits(v, 2)
}

// FormatScanReport formats one evaluated scan for an alert message.
func FormatScanReport(card *model.Card, snap *model.MarketSnapshot, ev *model.Evaluation) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("Scan: %s (cert %s)\n", card.Label(), card.CertNumber))
	b.WriteString(fmt.Sprintf("Market: %s avg, %.0f%% confidence, %s liquidity, %d sales\n",
		money(snap.AveragePrice), snap.Confidence, snap.Liquidity, snap.SalesCount))
	b.WriteString(fmt.Sprintf("Decision: %s - %s\n", ev.Action, ev.Reason))
	if ev.BuyPrice != nil {
		b.WriteString(fmt.Sprintf("Offer: %s (profit %s, ROI %.1f%%)\n",
			money(*ev.BuyPrice), money(*ev.ExpectedProfit), *ev.ExpectedROI))
	}
	for _, d := range ev.Details {
		b.WriteString("  • " + d + "\n")
	}
	return b.String()
}

// FormatSessionSummary formats a closed session's totals.
func FormatSessionSummary(sess *model.Session) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Session %s closed | %s\n\n", sess.ID, time.Now().Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Scanned: %d\n", sess.Totals.Scanned))
	b.WriteString(fmt.Sprintf("Accepted: %d | Denied: %d | Pending review: %d\n",
		sess.Totals.Accepted, sess.Totals.Denied, sess.Totals.PendingReview))
	b.WriteString(fmt.Sprintf("Total spend: %s\n", money(sess.Totals.TotalSpend)))
	b.WriteString(fmt.Sprintf("Expected profit: %s\n", money(sess.Totals.ExpectedProfit)))
	return b.String()
}

// FormatWeeklyDigest formats the weekly desk activity digest.
func FormatWeeklyDigest(stats *recorder.ScanStats, pendingReviews, openSessions int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Buying desk weekly digest | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Cards scanned: %d\n", stats.Scanned))
	b.WriteString(fmt.Sprintf("Auto-accepted: %d | Auto-denied: %d | Routed to review: %d\n",
		stats.Accepted, stats.Denied, stats.Reviewed))
	b.WriteString(fmt.Sprintf("Spend on auto-accepts: %s\n", money(stats.TotalSpend)))
	b.WriteString(fmt.Sprintf("Reviews still pending: %d | Sessions open: %d\n", pendingReviews, openSessions))
	return b.String()
}
