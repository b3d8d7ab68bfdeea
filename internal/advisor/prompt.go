package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"kairos/internal/predictor"
)

// Input is everything the advisory prompt embeds.
type Input struct {
	Signal      predictor.SignalDescriptor
	Market      predictor.MarketContext
	Predictions predictor.Predictions
}

// buildUserPrompt renders the request payload the provider sees. JSON keeps
// the prompt unambiguous across providers.
func buildUserPrompt(in Input) string {
	payload := map[string]any{
		"signal":          in.Signal,
		"market_context":  in.Market,
		"raw_predictions": in.Predictions,
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		b = []byte(fmt.Sprintf("%+v", payload))
	}
	var sb strings.Builder
	sb.WriteString("Review this signal persistence forecast and respond with your adjustment.\n\n")
	sb.Write(b)
	sb.WriteString("\n\nHorizons: shortTerm=1-4h, mediumTerm=4-24h, longTerm=1-7d.")
	return sb.String()
}
