package gemini

import (
	"encoding/json"
	"fmt"

	"halalradar/internal/core/domain"
)

func buildCompliancePrompt(name, category string, samples []domain.ReviewSample) string {
	samplesJSON, err := json.Marshal(samples)
	if err != nil {
		samplesJSON = []byte("[]")
	}

	return fmt.Sprintf(`You are an expert at analyzing restaurant reviews to determine Halal and Alcohol status for Muslim diners.

Restaurant: %q
Category: %q

Here are some relevant reviews:
%s

Based ONLY on these reviews and the restaurant details, determine:
1. isHalal: boolean (true if there is strong evidence of halal options)
2. halalStatus: 'certified' | 'partial' | 'muscle_meat' | 'mixed' | 'unknown' | 'not_halal'
   - certified: explicitly stated as certified
   - partial: only some items are halal (e.g. chicken only, or lamb only)
   - muscle_meat: reviews mention "halal meat" but not full certification
   - mixed: serves both halal and pork/non-halal meat
   - not_halal: explicit mentions of not being halal
3. alcoholStatus: 'none' | 'beer_wine' | 'full_bar' | 'unknown'
4. dietaryLabels: string[] (e.g. "pork-free", "alcohol-free", "vegetarian-friendly", "verified-halal")

Return a JSON object with keys: isHalal, halalStatus, alcoholStatus, dietaryLabels.
Do not use markdown formatting. Just JSON.
`, name, category, samplesJSON)
}
