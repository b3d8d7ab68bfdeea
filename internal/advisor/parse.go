package advisor

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"

	"kairos/internal/logger"
	"kairos/internal/pkg/jsonutil"
)

const (
	adjustmentFloor = -0.2
	adjustmentCeil  = 0.2
)

var (
	adjustmentPattern = regexp.MustCompile(`(?i)adjustment["'\s:=]+(-?\d+(?:\.\d+)?)`)
	confidencePattern = regexp.MustCompile(`(?i)confidence["'\s:=]+(\d+(?:\.\d+)?)`)
)

// ParseResponse turns raw provider output into Advice. Structured decoding
// is attempted first (JSON extraction, schema validation, strict decode);
// when that fails the text-extraction fallback scans for numeric
// adjustment/confidence mentions. It never returns an error.
func ParseResponse(raw string, schema *jsonschema.Schema) Advice {
	if adv, ok := parseStructured(raw, schema); ok {
		return adv
	}
	return parseFreeText(raw)
}

func parseStructured(raw string, schema *jsonschema.Schema) (Advice, bool) {
	block, ok := jsonutil.ExtractObject(raw)
	if !ok || !gjson.Valid(block) {
		return Advice{}, false
	}
	if schema != nil {
		var doc any
		if err := json.Unmarshal([]byte(block), &doc); err != nil {
			return Advice{}, false
		}
		if err := schema.Validate(doc); err != nil {
			logger.Debugf("advisory response failed schema validation: %v", err)
			return Advice{}, false
		}
	}
	var adv Advice
	if err := json.Unmarshal([]byte(block), &adv); err != nil {
		return Advice{}, false
	}
	adv.Adjustment = clampRange(adv.Adjustment, adjustmentFloor, adjustmentCeil)
	adv.Confidence = clampRange(adv.Confidence, 0, 1)
	adv.Kind = KindStructured
	return adv, true
}

// parseFreeText is the deterministic degraded parser for prose responses.
func parseFreeText(raw string) Advice {
	adv := Advice{
		Adjustment: 0,
		Confidence: 0.5,
		Reasoning:  truncate(strings.TrimSpace(raw), 500),
		Kind:       KindFreeText,
	}
	if m := adjustmentPattern.FindStringSubmatch(raw); len(m) == 2 {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			adv.Adjustment = clampRange(v, adjustmentFloor, adjustmentCeil)
		}
	}
	if m := confidencePattern.FindStringSubmatch(raw); len(m) == 2 {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			// Some providers answer in percent.
			if v > 1 {
				v = v / 100
			}
			adv.Confidence = clampRange(v, 0, 1)
		}
	}
	return adv
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
