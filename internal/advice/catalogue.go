package advice

import (
	"fmt"
	"math"
	"sort"

	"github.com/greensteps/greensteps/internal/quiz"
)

// tip is a scored candidate from the local catalogue.
type tip struct {
	// text is the rendered suggestion.
	text string

	// impactKg is the hand-assigned yearly saving estimate used for ranking.
	impactKg int
}

// maxLocalTips bounds the rendered list.
const maxLocalTips = 3

// Driving saving is capped at 50 weekly miles: beyond that the tip is about
// reducing, not eliminating, the habit.
const maxReducibleWeeklyMiles = 50

// dietImpactKg is the hand-assigned yearly saving for shifting one step
// toward a plant-based diet. Vegans get no diet tip.
var dietImpactKg = map[quiz.Diet]int{
	quiz.DietOmnivore:    600,
	quiz.DietPescatarian: 350,
	quiz.DietVegetarian:  200,
}

// heatingImpactKg is the hand-assigned yearly saving for a heating upgrade.
var heatingImpactKg = map[quiz.Heating]int{
	quiz.HeatingGas:      500,
	quiz.HeatingElectric: 250,
}

// recyclingImpactKg is the hand-assigned yearly saving for improving a weak
// recycling habit.
var recyclingImpactKg = map[quiz.Recycling]int{
	quiz.RecyclingNever:     200,
	quiz.RecyclingSometimes: 100,
}

// candidateTips scores the fixed catalogue against the answers, dropping tips
// whose triggering condition does not hold.
func candidateTips(answers *quiz.Answers) []tip {
	var tips []tip

	if answers.WeeklyMilesDriven > 0 {
		reducible := math.Min(answers.WeeklyMilesDriven, maxReducibleWeeklyMiles)
		impact := int(math.Round(reducible * 52 * 0.404))
		tips = append(tips, tip{
			text:     "Swap some weekly car miles for transit, biking, or walking",
			impactKg: impact,
		})
	}

	if impact, ok := dietImpactKg[answers.Diet]; ok {
		tips = append(tips, tip{
			text:     "Shift a few meals per week toward plant-based options",
			impactKg: impact,
		})
	}

	if answers.ElectricityKwhPerMonth > 0 {
		// Assume roughly 15% of usage is addressable with efficiency fixes.
		annualKwh := answers.ElectricityKwhPerMonth * 12
		impact := int(math.Round(annualKwh * 0.4 * 0.15))
		tips = append(tips, tip{
			text:     "Cut standby power and switch to efficient lighting and appliances",
			impactKg: impact,
		})
	}

	if impact, ok := heatingImpactKg[answers.HomeHeating]; ok {
		tips = append(tips, tip{
			text:     "Lower your thermostat a degree and improve insulation; consider a heat pump",
			impactKg: impact,
		})
	}

	if answers.FlightsShortHaulPerYear > 0 {
		tips = append(tips, tip{
			text:     "Replace a short-haul flight with a train trip",
			impactKg: answers.FlightsShortHaulPerYear * 250,
		})
	}

	if impact, ok := recyclingImpactKg[answers.RecyclingHabit]; ok {
		tips = append(tips, tip{
			text:     "Recycle consistently, especially metals and paper",
			impactKg: impact,
		})
	}

	return tips
}

// renderLocalTips ranks the candidates and renders the header plus at most
// three bulleted lines.
func renderLocalTips(answers *quiz.Answers, locationSummary string, totalKg *int) string {
	tips := candidateTips(answers)

	sort.SliceStable(tips, func(i, j int) bool {
		return tips[i].impactKg > tips[j].impactKg
	})
	if len(tips) > maxLocalTips {
		tips = tips[:maxLocalTips]
	}

	location := locationSummary
	if location == "" {
		location = unknownLocation
	}
	footprint := unknownFootprint
	if totalKg != nil {
		footprint = fmt.Sprintf("%d kg CO2e/yr", *totalKg)
	}

	out := fmt.Sprintf("Your top opportunities (location: %s, footprint: %s):", location, footprint)
	for _, tp := range tips {
		out += fmt.Sprintf("\n- %s (~%d kg CO2e/yr)", tp.text, tp.impactKg)
	}
	return out
}
