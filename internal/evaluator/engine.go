package evaluator

import (
	"fmt"

	"CardDesk/internal/model"
)

// EvaluateScan runs the ordered auto-accept filter chain for one scanned
// card. The first failing gate decides the outcome: liquidity, confidence
// and market value gates deny without pricing anything, the ROI gate
// denies after pricing, and the flip-time gate is soft and routes to
// review instead. Cheap data-quality gates run before the derived
// economics so rejections short-circuit early and the details trail reads
// in order of increasing specificity.
//
// Pure function: no I/O, no mutation of its inputs, safe to call
// concurrently.
func EvaluateScan(card *model.Card, snap *model.MarketSnapshot, settings *model.DeskSettings) *model.Evaluation {
	var details []string

	// Master switch: with auto-deny off every card becomes a manual
	// decision. Never an auto-accept, never an auto-deny.
	if !settings.AutoDenyEnabled {
		price, profit, roi := economics(snap.AveragePrice, settings)
		return &model.Evaluation{
			Action:         model.ActionReview,
			BuyPrice:       &price,
			ExpectedProfit: &profit,
			ExpectedROI:    &roi,
			Reason:         "Auto-filtering disabled",
			Details:        append(details, "Auto-deny disabled, routing to manual review"),
		}
	}

	// Gate 1: liquidity
	if LiquidityRank(snap.Liquidity) < LiquidityRank(settings.MinLiquidityLevel) {
		return &model.Evaluation{
			Action:  model.ActionAutoDeny,
			Reason:  fmt.Sprintf("Low liquidity (%s), minimum is %s", snap.Liquidity, settings.MinLiquidityLevel),
			Details: append(details, fmt.Sprintf("Liquidity %s below minimum %s", snap.Liquidity, settings.MinLiquidityLevel)),
		}
	}
	details = append(details, fmt.Sprintf("Liquidity OK (%s)", snap.Liquidity))

	// Gate 2: confidence
	if snap.Confidence < settings.MinConfidenceLevel {
		return &model.Evaluation{
			Action:  model.ActionAutoDeny,
			Reason:  fmt.Sprintf("Low confidence (%.0f%%, %d sales)", snap.Confidence, snap.SalesCount),
			Details: append(details, fmt.Sprintf("Confidence %.0f%% below minimum %.0f%%", snap.Confidence, settings.MinConfidenceLevel)),
		}
	}
	details = append(details, fmt.Sprintf("Confidence OK (%.0f%%, %d sales)", snap.Confidence, snap.SalesCount))

	// Gate 3: market value
	if snap.AveragePrice < settings.MinMarketValue {
		return &model.Evaluation{
			Action:  model.ActionAutoDeny,
			Reason:  fmt.Sprintf("Market value $%.2f below minimum $%.2f", snap.AveragePrice, settings.MinMarketValue),
			Details: append(details, fmt.Sprintf("Market value $%.2f below minimum $%.2f", snap.AveragePrice, settings.MinMarketValue)),
		}
	}
	details = append(details, fmt.Sprintf("Market value OK ($%.2f)", snap.AveragePrice))

	price, profit, roi := economics(snap.AveragePrice, settings)

	// Gate 4: ROI. The computed figures stay in the details trail even on
	// a deny, so the operator can see what the desk would have offered.
	if roi < settings.MinROIPercentage {
		return &model.Evaluation{
			Action:  model.ActionAutoDeny,
			Reason:  fmt.Sprintf("Low ROI (%.0f%%), minimum is %.0f%%", roi, settings.MinROIPercentage),
			Details: append(details, fmt.Sprintf("Buy $%.2f, sell $%.2f, profit $%.2f (ROI %.1f%%)", price, snap.AveragePrice, profit, roi)),
		}
	}
	details = append(details, fmt.Sprintf("ROI OK (%.1f%%, buy $%.2f, profit $%.2f)", roi, price, profit))

	// Gate 5: flip time, soft. The lookup table is the weakest signal in
	// the chain, so a slow but profitable card goes to a human instead of
	// being rejected outright.
	days := EstimateFlipDays(snap.Liquidity)
	if days > settings.TargetFlipDays {
		return &model.Evaluation{
			Action:         model.ActionReview,
			BuyPrice:       &price,
			ExpectedProfit: &profit,
			ExpectedROI:    &roi,
			Reason:         fmt.Sprintf("Slow exit: estimated %d days to sell, target is %d", days, settings.TargetFlipDays),
			Details:        append(details, fmt.Sprintf("Estimated flip %d days exceeds target %d", days, settings.TargetFlipDays)),
		}
	}
	details = append(details, fmt.Sprintf("Estimated flip %d days within target %d", days, settings.TargetFlipDays))

	return &model.Evaluation{
		Action:         model.ActionAutoAccept,
		BuyPrice:       &price,
		ExpectedProfit: &profit,
		ExpectedROI:    &roi,
		Reason:         fmt.Sprintf("All checks passed, offer $%.2f for %s", price, card.Label()),
		Details:        details,
	}
}

// economics prices the card and derives profit and ROI. ROI is zero when
// the buy price is zero so a free card never divides by zero.
func economics(averagePrice float64, settings *model.DeskSettings) (price, profit, roi float64) {
	price = CalculateBuyPrice(averagePrice, settings.DefaultOfferPercentage, settings.PriceRounding)
	profit = averagePrice - price
	if price > 0 {
		roi = profit / price * 100
	}
	return price, profit, roi
}
