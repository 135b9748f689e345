/*
Copyright 2025 Vejbill Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package vejbill

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mkroghdk/vejbill/model"
)

// priceTolerance is the absolute difference under which the expected and
// recorded price count as equal.
var priceTolerance = decimal.RequireFromString("0.01")

// narrativeDateLayout is the day-first format caseworkers read.
const narrativeDateLayout = "02-01-2006"

// Report collects the discrepancy narratives for one case, in discovery
// order. It is rendered to a single HTML body only at send time.
type Report struct {
	items []model.Discrepancy
}

func (r *Report) Append(kind model.DiscrepancyKind, message string) {
	r.items = append(r.items, model.Discrepancy{Kind: kind, Message: message})
}

func (r *Report) Empty() bool {
	return len(r.items) == 0
}

func (r *Report) Len() int {
	return len(r.items)
}

func (r *Report) Items() []model.Discrepancy {
	return r.items
}

// Render joins the narratives into the HTML mail body.
func (r *Report) Render() string {
	parts := make([]string, 0, len(r.items))
	for _, item := range r.items {
		parts = append(parts, item.Message)
	}
	return strings.Join(parts, "<br><br>")
}

// priceMatches compares the expected charge with the recorded total.
func priceMatches(expected, recorded decimal.Decimal) bool {
	return expected.Sub(recorded).Abs().LessThanOrEqual(priceTolerance)
}

// impliedLength back-derives the length a caseworker effectively charged
// for: the recorded unit price over the reference unit price, rounded to
// two decimals. Zero when there is no reference price to divide by.
func impliedLength(recordedUnit, refUnit decimal.Decimal) decimal.Decimal {
	if refUnit.IsZero() {
		return decimal.Zero
	}
	return recordedUnit.Div(refUnit).Round(2)
}

// The narratives below are the exact caseworker-facing texts, in Danish.

func missingCVRNarrative(link, permitNumber string) (model.DiscrepancyKind, string) {
	return model.KindMissingCVR, fmt.Sprintf(
		`Der er intet CVR nummer angivet for faktura modtager på tilladelse <a href="%s">%s</a>.`,
		link, permitNumber)
}

func malformedCVRNarrative(link, permitNumber, cvr string) (model.DiscrepancyKind, string) {
	return model.KindMalformedCVR, fmt.Sprintf(
		`CVR nummer er angivet som %s for faktura modtager på tilladelse <a href="%s">%s</a>, `+
			`men det burde være udelukkende 8 cifre. Check venligst om det er angivet korrekt `+
			`og om der er skjulte tegn eller mellemrum.`,
		cvr, link, permitNumber)
}

func detailMismatchNarrative(link, permitNumber, fragment string) (model.DiscrepancyKind, string) {
	return model.KindDetailMismatch, fmt.Sprintf(
		`Der er uoverensstemmelse mellem de angivne værdier på tilladelse <a href="%s">%s</a> `+
			`for fakturalinjen med teksten %s. Robotten har opdaget følgende:`,
		link, permitNumber, fragment)
}

func lengthNarrative(length, calculated, unitPrice decimal.Decimal) (model.DiscrepancyKind, string) {
	return model.KindLengthMismatch, fmt.Sprintf(
		`Længden/m2 er opgivet til %s, men ud fra fakturalinjen udregnes længden/m2 til at være %s `+
			`hvis enhedsprisen er på %s. Du skal derfor rette fakturalinjen eller sørge for at `+
			`længden/m2 er angivet korrekt i "Relateret sag" feltet. Sørg for kun at have længden `+
			`eller m2 værdien stående i relateret sag for at robotten kan læse det korrekt, og f.eks. `+
			`ikke udregningen af kvadratmeter. Hvis der er flere fakturalinjer på tilladelsen med `+
			`forskellige længder må du rette dem til i Vejmankassen når du sender dem til fakturering.`,
		length, calculated, unitPrice)
}

func dayCountNarrative(written decimal.Decimal, plan datePlan, days int) (model.DiscrepancyKind, string) {
	start := plan.start.Format(narrativeDateLayout)
	chosen := plan.chosenEnd.Format(narrativeDateLayout)
	end := plan.end.Format(narrativeDateLayout)

	if plan.usedCompletion() {
		return model.KindDayCountMismatch, fmt.Sprintf(
			`Antal af dage er angivet til %s i fakturalinjen, men ud fra startdato og `+
				`færdigmeldingsdato udregnes antallet af dage fra %s til og med %s til at være %d dage. `+
				`Færdigmeldingsdatoen %s benyttes da den er angivet til at være færdig før slutdatoen `+
				`som er sat til %s.`,
			written, start, chosen, days, chosen, end)
	}
	return model.KindDayCountMismatch, fmt.Sprintf(
		`Antal af dage er angivet til %s i fakturalinjen, men ud fra startdato og slutdato `+
			`udregnes antallet af dage fra %s til og med %s til at være %d dage`,
		written, start, end, days)
}

func ruleContextNarrative(equipmentType int64, fragment string) (model.DiscrepancyKind, string) {
	return model.KindRuleContext, fmt.Sprintf(
		`Du har fået tilsendt denne mail da du står som sagsbehandler på sagen inde i Vejman. `+
			`Tilladelsen er angivet som værende type %d under Materiel - med følgende fakturatekst: %s.`,
		equipmentType, fragment)
}

// mailPreamble opens every discrepancy mail: where to fix things and why
// the mail only arrives once per billing line.
func mailPreamble(link, permitNumber string) string {
	return fmt.Sprintf(
		`Der er fundet uoverensstemmelser på fakturalinje(r) for tilladelse <a href="%s">%s</a>. `+
			`Ret dem til inde i Vejman, så bliver de automatisk opdateret i Vejmankassen næste dag `+
			`medmindre de er slettet eller sendt til fakturering. Hvis datoerne er forkerte eller der `+
			`er flere fakturalinjer pr. tilladelse skal de opdateres i `+
			`<a href="https://vejmankassen.adm.aarhuskommune.dk/">Vejmankassen</a>. For at undgå spam `+
			`får du kun denne mail en gang pr. fakturalinje, så du skal selv tjekke op på om alt er `+
			`korrekt før du sender den til fakturering.<br><br>`,
		link, permitNumber)
}

func mailSubject(permitNumber string) string {
	return fmt.Sprintf("Uoverensstemmelser for fakturering på tilladelse %s", permitNumber)
}
